package audio

import (
	"context"

	"github.com/killallgit/audioengine/pkg/ffmpeg"
)

// Decoder is the external decoding capability the engine depends on.
// *ffmpeg.FFmpeg satisfies it; tests substitute doubles.
type Decoder interface {
	// ListFormats returns the container formats the decoder can read
	ListFormats(ctx context.Context) ([]string, error)

	// Probe inspects a file's container and streams without decoding it
	Probe(ctx context.Context, filePath string) (*ffmpeg.ProbeOutput, error)

	// Transcode decodes input into output using the given raw PCM format
	Transcode(ctx context.Context, input, output string, format ffmpeg.PCMFormat) error
}

// RandomSource supplies uniform values in [0,1) to the waveform synthesizer
type RandomSource interface {
	Float64() float64
}
