package types

import "github.com/killallgit/audioengine/internal/services/audio"

// Status constants for API responses
const (
	StatusOK        = "ok"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
	StatusError     = "error"
)

// ErrorResponse is the body of every 4xx/5xx answer
type ErrorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

// MetadataResponse wraps the metadata of one file
type MetadataResponse struct {
	Path     string               `json:"path"`
	Metadata *audio.AudioMetadata `json:"metadata"`
}

// WaveformResponse wraps the display peaks of one file
type WaveformResponse struct {
	Path     string              `json:"path"`
	Width    int                 `json:"width"`
	Waveform *audio.WaveformData `json:"waveform"`
}

// InvalidateResponse reports how many stored waveforms were dropped for a file
type InvalidateResponse struct {
	Path    string `json:"path"`
	Removed int64  `json:"removed"`
}

// HealthResponse describes the service, decoder and database state
type HealthResponse struct {
	Status    string             `json:"status"`
	Timestamp string             `json:"timestamp"`
	Decoder   audio.Availability `json:"decoder"`
	Database  DatabaseHealth     `json:"database"`
}

// DatabaseHealth is the database part of HealthResponse
type DatabaseHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// VersionResponse identifies the running build
type VersionResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Status      string `json:"status"`
}
