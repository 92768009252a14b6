package audio

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/killallgit/audioengine/pkg/ffmpeg"
)

// mockDecoder is a test double for Decoder that records how often it is invoked
type mockDecoder struct {
	mu sync.Mutex

	formats    []string
	formatsErr error

	probeOut *ffmpeg.ProbeOutput
	probeErr error

	pcm          []byte // written to the transcode output path
	transcodeErr error  // returned after pcm has been written

	listCalls      int
	probeCalls     int
	transcodeCalls int
	lastFormat     ffmpeg.PCMFormat
}

func newMockDecoder() *mockDecoder {
	return &mockDecoder{
		formats: []string{"wav", "mp3", "flac"},
		probeOut: &ffmpeg.ProbeOutput{
			Format: ffmpeg.ProbeFormat{Duration: "12.5", Bitrate: "256000"},
			Streams: []ffmpeg.ProbeStream{
				{Index: 0, CodecType: "audio", CodecName: "pcm_s16le", SampleRate: "48000", Channels: 1},
			},
		},
	}
}

func (m *mockDecoder) ListFormats(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.formatsErr != nil {
		return nil, m.formatsErr
	}
	return m.formats, nil
}

func (m *mockDecoder) Probe(ctx context.Context, filePath string) (*ffmpeg.ProbeOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probeCalls++
	if m.probeErr != nil {
		return nil, m.probeErr
	}
	return m.probeOut, nil
}

func (m *mockDecoder) Transcode(ctx context.Context, input, output string, format ffmpeg.PCMFormat) error {
	m.mu.Lock()
	m.transcodeCalls++
	m.lastFormat = format
	pcm, transcodeErr := m.pcm, m.transcodeErr
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if pcm != nil {
		if err := os.WriteFile(output, pcm, 0o600); err != nil {
			return err
		}
	}
	return transcodeErr
}

func (m *mockDecoder) calls() (list, probe, transcode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls, m.probeCalls, m.transcodeCalls
}

var errMockDecoder = errors.New("mock decoder failure")
