package waveforms

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/killallgit/audioengine/internal/models"
	"github.com/killallgit/audioengine/internal/services/audio"
	"github.com/killallgit/audioengine/internal/services/cache"
)

const (
	metadataKeyPrefix = "meta:"
	waveformKeyPrefix = "waveform:"
)

// Options configures the caching behaviour of the service
type Options struct {
	DefaultWidth int
	MetadataTTL  time.Duration
	WaveformTTL  time.Duration
}

// service implements WaveformService. The engine stays stateless; memoization lives here.
type service struct {
	engine Engine
	cache  cache.Cache
	repo   WaveformRepository // nil disables the persistent store
	opts   Options
}

// NewService creates a new waveform service. Either cache or repo may be nil.
func NewService(engine Engine, c cache.Cache, repo WaveformRepository, opts Options) WaveformService {
	if opts.DefaultWidth < 1 {
		opts.DefaultWidth = audio.DefaultWidth
	}
	return &service{
		engine: engine,
		cache:  c,
		repo:   repo,
		opts:   opts,
	}
}

// fingerprint identifies one version of a file on disk
type fingerprint struct {
	path    string
	size    int64
	modTime time.Time
}

func (f fingerprint) metadataKey() string {
	return fmt.Sprintf("%s%s:%d:%d", metadataKeyPrefix, f.path, f.size, f.modTime.UnixNano())
}

func (f fingerprint) waveformKey(width int) string {
	return fmt.Sprintf("%s%s:%d:%d:%d", waveformKeyPrefix, f.path, f.size, f.modTime.UnixNano(), width)
}

func statFingerprint(path string) (fingerprint, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fingerprint{}, false
	}
	return fingerprint{path: path, size: info.Size(), modTime: info.ModTime()}, true
}

// GetMetadata returns metadata for a file, memoized per file fingerprint
func (s *service) GetMetadata(ctx context.Context, filePath string) (*audio.AudioMetadata, error) {
	if filePath == "" {
		return nil, ErrInvalidPath
	}

	fp, ok := statFingerprint(filePath)
	if !ok {
		// Let the engine produce the not-found error
		return s.engine.GetMetadata(ctx, filePath)
	}

	key := fp.metadataKey()
	if s.cache != nil {
		var cached audio.AudioMetadata
		if cache.GetJSON(ctx, s.cache, key, &cached) {
			log.Printf("[DEBUG] Metadata cache hit for %s", filePath)
			return &cached, nil
		}
	}

	meta, err := s.engine.GetMetadata(ctx, filePath)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, meta, s.opts.MetadataTTL); err != nil {
			log.Printf("[WARN] Failed to cache metadata for %s: %v", filePath, err)
		}
	}
	return meta, nil
}

// GetWaveform returns width peaks for a file. Decoded results are reused while the file's
// size and modification time are unchanged; synthetic results are never reused.
func (s *service) GetWaveform(ctx context.Context, filePath string, width int) (*audio.WaveformData, error) {
	if filePath == "" {
		return nil, ErrInvalidPath
	}
	if width < 1 {
		width = s.opts.DefaultWidth
	}

	fp, ok := statFingerprint(filePath)
	if !ok {
		return s.engine.GetWaveform(ctx, filePath, width)
	}

	key := fp.waveformKey(width)
	if s.cache != nil {
		var cached audio.WaveformData
		if cache.GetJSON(ctx, s.cache, key, &cached) {
			log.Printf("[DEBUG] Waveform cache hit for %s (width %d)", filePath, width)
			return &cached, nil
		}
	}

	if stored := s.loadStored(ctx, fp, width); stored != nil {
		s.remember(ctx, key, stored)
		return stored, nil
	}

	waveform, err := s.engine.GetWaveform(ctx, filePath, width)
	if err != nil {
		return nil, err
	}

	if waveform.Source == audio.WaveformDecoded {
		s.remember(ctx, key, waveform)
		s.store(ctx, fp, waveform)
	}
	return waveform, nil
}

// Invalidate drops every cached and stored result for a file
func (s *service) Invalidate(ctx context.Context, filePath string) (int64, error) {
	if filePath == "" {
		return 0, ErrInvalidPath
	}

	if s.cache != nil {
		s.cache.DeletePrefix(ctx, metadataKeyPrefix+filePath+":")
		s.cache.DeletePrefix(ctx, waveformKeyPrefix+filePath+":")
	}

	if s.repo == nil {
		return 0, nil
	}

	removed, err := s.repo.DeleteByPath(ctx, filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stored waveforms: %w", err)
	}
	log.Printf("[DEBUG] Invalidated %d stored waveform(s) for %s", removed, filePath)
	return removed, nil
}

// Availability reports the engine's decoder snapshot
func (s *service) Availability() audio.Availability {
	return s.engine.Availability()
}

// loadStored returns the persisted waveform if it was computed from this exact file version
func (s *service) loadStored(ctx context.Context, fp fingerprint, width int) *audio.WaveformData {
	if s.repo == nil {
		return nil
	}

	row, err := s.repo.Get(ctx, fp.path, width)
	if err != nil {
		if !errors.Is(err, ErrWaveformNotFound) {
			log.Printf("[WARN] Failed to load stored waveform for %s: %v", fp.path, err)
		}
		return nil
	}

	if !row.Matches(fp.size, fp.modTime) {
		log.Printf("[DEBUG] Stored waveform for %s is stale, recomputing", fp.path)
		return nil
	}

	peaks, err := row.Peaks()
	if err != nil || len(peaks) != width {
		log.Printf("[WARN] Stored waveform for %s is unreadable, recomputing", fp.path)
		return nil
	}

	log.Printf("[DEBUG] Loaded stored waveform for %s (width %d)", fp.path, width)
	return &audio.WaveformData{
		Peaks:           peaks,
		Duration:        row.Duration,
		SamplesPerPixel: row.SamplesPerPixel,
		SampleRate:      row.SampleRate,
		Channels:        row.Channels,
		Source:          audio.WaveformDecoded,
	}
}

// store persists a decoded waveform. Failures are logged; the caller still gets its peaks.
func (s *service) store(ctx context.Context, fp fingerprint, waveform *audio.WaveformData) {
	if s.repo == nil {
		return
	}
	if err := s.save(ctx, fp, waveform); err != nil {
		log.Printf("[WARN] Failed to store waveform for %s: %v", fp.path, err)
	}
}

func (s *service) save(ctx context.Context, fp fingerprint, waveform *audio.WaveformData) error {
	if len(waveform.Peaks) == 0 {
		return ErrInvalidPeaksData
	}

	row := &models.Waveform{
		FilePath:        fp.path,
		Duration:        waveform.Duration,
		SamplesPerPixel: waveform.SamplesPerPixel,
		SampleRate:      waveform.SampleRate,
		Channels:        waveform.Channels,
	}
	row.SetFingerprint(fp.size, fp.modTime)
	if err := row.SetPeaks(waveform.Peaks); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPeaksData, err)
	}

	return s.repo.Save(ctx, row)
}

func (s *service) remember(ctx context.Context, key string, waveform *audio.WaveformData) {
	if s.cache == nil {
		return
	}
	if err := cache.SetJSON(ctx, s.cache, key, waveform, s.opts.WaveformTTL); err != nil {
		log.Printf("[WARN] Failed to cache waveform: %v", err)
	}
}
