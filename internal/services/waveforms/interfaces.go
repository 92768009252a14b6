package waveforms

import (
	"context"

	"github.com/killallgit/audioengine/internal/models"
	"github.com/killallgit/audioengine/internal/services/audio"
)

// Engine is the part of audio.Engine the service fronts
type Engine interface {
	GetMetadata(ctx context.Context, filePath string) (*audio.AudioMetadata, error)
	GetWaveform(ctx context.Context, filePath string, width int) (*audio.WaveformData, error)
	Availability() audio.Availability
}

// WaveformService defines the interface for cached metadata and waveform lookups
type WaveformService interface {
	// GetMetadata returns metadata for a file, memoized per file fingerprint
	GetMetadata(ctx context.Context, filePath string) (*audio.AudioMetadata, error)

	// GetWaveform returns width peaks for a file, reusing decoded results when the file is unchanged
	GetWaveform(ctx context.Context, filePath string, width int) (*audio.WaveformData, error)

	// Invalidate drops every cached and stored result for a file
	Invalidate(ctx context.Context, filePath string) (int64, error)

	// Availability reports the engine's decoder snapshot
	Availability() audio.Availability
}

// WaveformRepository defines the interface for waveform data access
type WaveformRepository interface {
	// Get retrieves the waveform stored for a file at a width
	Get(ctx context.Context, filePath string, width int) (*models.Waveform, error)

	// Save inserts a waveform or replaces the one stored for the same file and width
	Save(ctx context.Context, waveform *models.Waveform) error

	// DeleteByPath removes every width stored for a file and returns how many rows went
	DeleteByPath(ctx context.Context, filePath string) (int64, error)

	// Exists checks if a waveform is stored for a file at a width
	Exists(ctx context.Context, filePath string, width int) (bool, error)
}
