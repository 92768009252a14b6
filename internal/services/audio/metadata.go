package audio

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/killallgit/audioengine/pkg/ffmpeg"
)

// metadataProber resolves AudioMetadata from the decoder's probe, or from the estimator
type metadataProber struct {
	decoder Decoder
}

// Metadata stats the file and then either probes or estimates. The only error it
// returns wraps ErrFileNotFound; probe problems are logged and replaced by an estimate.
func (p *metadataProber) Metadata(ctx context.Context, path string, avail Availability) (*AudioMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fileNotFound(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fileNotFound(path, errors.New("not a regular file"))
	}

	fileSize := info.Size()
	format := FormatFromPath(path)
	details := inspectFile(path)

	if !avail.Available || p.decoder == nil {
		meta := Estimate(fileSize, format)
		details.apply(meta)
		return meta, nil
	}

	meta, err := p.probe(ctx, path, fileSize, format)
	if err != nil {
		log.Printf("[WARN] audio: %v; using size estimate", err)
		meta = Estimate(fileSize, format)
	}
	details.apply(meta)
	return meta, nil
}

// probe runs the decoder's introspection and interprets it, reporting any problem as ProbeFailure
func (p *metadataProber) probe(ctx context.Context, path string, fileSize int64, format string) (*AudioMetadata, error) {
	output, err := p.decoder.Probe(ctx, path)
	if err != nil {
		return nil, &ProbeFailure{Path: path, Err: err}
	}

	meta, err := interpretProbe(output, fileSize, format)
	if err != nil {
		return nil, &ProbeFailure{Path: path, Err: err}
	}
	return meta, nil
}

// interpretProbe maps probe output onto AudioMetadata, applying defaults for missing fields
func interpretProbe(output *ffmpeg.ProbeOutput, fileSize int64, format string) (*AudioMetadata, error) {
	stream := output.AudioStream()
	if stream == nil {
		return nil, errNoAudioStream
	}

	meta := &AudioMetadata{
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		Format:     format,
		FileSize:   fileSize,
		Codec:      stream.CodecName,
		Source:     MetadataFromProbe,
	}

	if duration, ok := output.Format.DurationSeconds(); ok {
		meta.Duration = duration
	}
	if rate, ok := stream.SampleRateHz(); ok && rate > 0 {
		meta.SampleRate = rate
	}
	if stream.Channels > 0 {
		meta.Channels = stream.Channels
	}
	if bitRate, ok := output.Format.BitrateBPS(); ok && bitRate > 0 {
		meta.BitRate = bitRate
	}

	meta.Title = output.Format.Tag("title")
	meta.Artist = output.Format.Tag("artist")
	meta.Album = output.Format.Tag("album")
	meta.Year = output.Format.Tag("date")
	if meta.Year == "" {
		meta.Year = output.Format.Tag("year")
	}

	return meta, nil
}
