package audio

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Options configures an Engine
type Options struct {
	TempDir        string       // Directory for decode scratch files, "" for the OS default
	DefaultWidth   int          // Peaks produced when a caller passes width < 1
	DisableDecoder bool         // Skip the availability probe and always estimate/synthesize
	Random         RandomSource // Synthesizer randomness, nil for math/rand/v2
}

// Engine turns audio files into metadata and display waveforms. It holds no per-file
// state; the only shared value is the Availability captured by Initialize.
type Engine struct {
	decoder      Decoder
	opts         Options
	prober       *metadataProber
	extractor    *pcmExtractor
	random       RandomSource
	initOnce     sync.Once
	availability atomic.Pointer[Availability]
}

// New creates an Engine around a decoder. Call Initialize before serving requests;
// until then the decoder is treated as unavailable.
func New(decoder Decoder, opts Options) *Engine {
	if opts.DefaultWidth < 1 {
		opts.DefaultWidth = DefaultWidth
	}
	random := opts.Random
	if random == nil {
		random = globalRandom{}
	}

	return &Engine{
		decoder:   decoder,
		opts:      opts,
		prober:    &metadataProber{decoder: decoder},
		extractor: &pcmExtractor{decoder: decoder, tempDir: opts.TempDir},
		random:    random,
	}
}

// Initialize runs the availability probe exactly once; later calls return the first result
func (e *Engine) Initialize(ctx context.Context) Availability {
	e.initOnce.Do(func() {
		var avail Availability
		if e.opts.DisableDecoder {
			avail = Availability{Reason: "decoder disabled by configuration", CheckedAt: time.Now().UTC()}
			log.Printf("[INFO] audio: decoder disabled by configuration, using estimates and synthetic waveforms")
		} else {
			avail = CheckAvailability(ctx, e.decoder)
		}
		e.availability.Store(&avail)
	})
	return e.Availability()
}

// Availability returns the snapshot taken by Initialize
func (e *Engine) Availability() Availability {
	if avail := e.availability.Load(); avail != nil {
		return *avail
	}
	return Availability{Reason: "not initialized"}
}

// GetMetadata returns technical metadata for a file. It fails only with ErrFileNotFound.
func (e *Engine) GetMetadata(ctx context.Context, filePath string) (*AudioMetadata, error) {
	return e.prober.Metadata(ctx, filePath, e.Availability())
}

// GetWaveform returns exactly width peaks for a file (DefaultWidth when width < 1).
// Once the file is known to exist it always succeeds; decode problems are logged and
// answered with a synthetic waveform marked WaveformSynthetic.
func (e *Engine) GetWaveform(ctx context.Context, filePath string, width int) (*WaveformData, error) {
	if width < 1 {
		width = e.opts.DefaultWidth
	}

	avail := e.Availability()
	meta, err := e.prober.Metadata(ctx, filePath, avail)
	if err != nil {
		return nil, err
	}

	if !avail.Available {
		log.Printf("[DEBUG] audio: decoder unavailable, synthesizing waveform for %s", filePath)
		return e.synthesize(meta, width), nil
	}

	raw, err := e.extractor.Extract(ctx, filePath)
	if err != nil {
		log.Printf("[WARN] audio: %v; using synthetic waveform", err)
		return e.synthesize(meta, width), nil
	}

	return &WaveformData{
		Peaks:           ReduceToPeaks(raw, width),
		Duration:        meta.Duration,
		SamplesPerPixel: samplesPerPixel(meta, width),
		SampleRate:      meta.SampleRate,
		Channels:        meta.Channels,
		Source:          WaveformDecoded,
	}, nil
}

func (e *Engine) synthesize(meta *AudioMetadata, width int) *WaveformData {
	return &WaveformData{
		Peaks:           SynthesizePeaks(width, e.random),
		Duration:        meta.Duration,
		SamplesPerPixel: samplesPerPixel(meta, width),
		SampleRate:      meta.SampleRate,
		Channels:        meta.Channels,
		Source:          WaveformSynthetic,
	}
}
