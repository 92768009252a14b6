package waveforms_test

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/go-audio/wav"
	"github.com/killallgit/audioengine/pkg/ffmpeg"
)

var errNotWAV = errors.New("not a wav file")

// wavDecoder stands in for ffmpeg. It understands 16-bit PCM WAV only, which is enough
// to drive the real engine end to end; anything else fails like an unreadable file.
type wavDecoder struct {
	unavailable bool
	probes      atomic.Int32
	transcodes  atomic.Int32
}

func (d *wavDecoder) ListFormats(ctx context.Context) ([]string, error) {
	if d.unavailable {
		return nil, ffmpeg.ErrFFmpegNotFound
	}
	return []string{"wav"}, nil
}

func (d *wavDecoder) Probe(ctx context.Context, filePath string) (*ffmpeg.ProbeOutput, error) {
	d.probes.Add(1)

	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, errNotWAV
	}
	duration, err := dec.Duration()
	if err != nil {
		return nil, err
	}

	return &ffmpeg.ProbeOutput{
		Format: ffmpeg.ProbeFormat{
			Filename:   filePath,
			FormatName: "wav",
			Duration:   strconv.FormatFloat(duration.Seconds(), 'f', 6, 64),
			Bitrate:    strconv.Itoa(int(dec.SampleRate) * int(dec.NumChans) * int(dec.BitDepth)),
		},
		Streams: []ffmpeg.ProbeStream{{
			CodecType:  "audio",
			CodecName:  "pcm_s16le",
			SampleRate: strconv.Itoa(int(dec.SampleRate)),
			Channels:   int(dec.NumChans),
		}},
	}, nil
}

// Transcode downmixes to mono and resamples by nearest frame to the requested rate
func (d *wavDecoder) Transcode(ctx context.Context, input, output string, format ffmpeg.PCMFormat) error {
	d.transcodes.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return errNotWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return err
	}
	if format.Codec != "s16le" || format.Channels != 1 {
		return fmt.Errorf("unsupported target %+v", format)
	}

	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	outFrames := frames * format.SampleRate / buf.Format.SampleRate

	raw := make([]byte, outFrames*2)
	for i := 0; i < outFrames; i++ {
		src := i * buf.Format.SampleRate / format.SampleRate
		sum := 0
		for c := 0; c < channels; c++ {
			sum += buf.Data[src*channels+c]
		}
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(int16(sum/channels)))
	}
	return os.WriteFile(output, raw, 0o600)
}
