package audio

import "github.com/killallgit/audioengine/pkg/ffmpeg"

const (
	// DefaultWidth is the number of peaks produced when a caller does not ask for a width
	DefaultWidth = 800

	// Estimated durations are clamped into this range (seconds)
	MinEstimatedDuration = 30.0
	MaxEstimatedDuration = 7200.0

	// Fallback stream properties when a probe omits them, and for every estimate
	DefaultSampleRate = 44100
	DefaultChannels   = 2
)

// TargetPCM is the normalized format every extraction decodes to:
// mono, 8 kHz, 16-bit signed little-endian, no header.
var TargetPCM = ffmpeg.PCMFormat{
	Codec:      "s16le",
	SampleRate: 8000,
	Channels:   1,
}

// MetadataSource records which path produced an AudioMetadata
type MetadataSource string

const (
	MetadataFromProbe    MetadataSource = "probe"
	MetadataFromEstimate MetadataSource = "estimate"
)

// WaveformSource records whether peaks came from decoded samples or the synthesizer
type WaveformSource string

const (
	WaveformDecoded   WaveformSource = "decoded"
	WaveformSynthetic WaveformSource = "synthetic"
)

// AudioMetadata is the technical description of an audio file
type AudioMetadata struct {
	Duration   float64        `json:"duration"`          // Seconds
	SampleRate int            `json:"sampleRate"`        // Hz
	Channels   int            `json:"channels"`          // >= 1
	BitRate    int            `json:"bitRate,omitempty"` // Bits per second, 0 when unknown
	Format     string         `json:"format"`            // Lower-case file extension without the dot
	FileSize   int64          `json:"fileSize"`          // Bytes
	Codec      string         `json:"codec,omitempty"`
	MIMEType   string         `json:"mimeType,omitempty"`
	Title      string         `json:"title,omitempty"`
	Artist     string         `json:"artist,omitempty"`
	Album      string         `json:"album,omitempty"`
	Year       string         `json:"year,omitempty"`
	Source     MetadataSource `json:"source"`
}

// Estimated reports whether the metadata came from the size-based estimator
func (m *AudioMetadata) Estimated() bool {
	return m.Source == MetadataFromEstimate
}

// WaveformData is a fixed-width amplitude profile for display
type WaveformData struct {
	Peaks           []float64      `json:"peaks"` // len == requested width, each in [0,1]
	Duration        float64        `json:"duration"`
	SamplesPerPixel int            `json:"samplesPerPixel"` // Informational, derived from metadata
	SampleRate      int            `json:"sampleRate"`
	Channels        int            `json:"channels"`
	Source          WaveformSource `json:"source"`
}

// Synthetic reports whether the peaks were generated rather than decoded
func (w *WaveformData) Synthetic() bool {
	return w.Source == WaveformSynthetic
}
