package audio

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/killallgit/audioengine/internal/testutil"
	"github.com/killallgit/audioengine/pkg/ffmpeg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretProbe(t *testing.T) {
	tests := []struct {
		name     string
		output   *ffmpeg.ProbeOutput
		expected AudioMetadata
		wantErr  error
	}{
		{
			name: "complete probe",
			output: &ffmpeg.ProbeOutput{
				Format: ffmpeg.ProbeFormat{
					Duration: "184.32",
					Bitrate:  "320000",
					Tags:     map[string]string{"TITLE": "Intro", "artist": " Someone ", "album": "Demo", "date": "2021"},
				},
				Streams: []ffmpeg.ProbeStream{
					{Index: 0, CodecType: "video", CodecName: "mjpeg"},
					{Index: 1, CodecType: "audio", CodecName: "mp3", SampleRate: "48000", Channels: 1},
				},
			},
			expected: AudioMetadata{
				Duration: 184.32, SampleRate: 48000, Channels: 1, BitRate: 320000,
				Format: "mp3", FileSize: 1000, Codec: "mp3",
				Title: "Intro", Artist: "Someone", Album: "Demo", Year: "2021",
				Source: MetadataFromProbe,
			},
		},
		{
			name: "missing fields take defaults",
			output: &ffmpeg.ProbeOutput{
				Format:  ffmpeg.ProbeFormat{Duration: "N/A", Tags: map[string]string{"year": "1999"}},
				Streams: []ffmpeg.ProbeStream{{CodecType: "audio"}},
			},
			expected: AudioMetadata{
				Duration: 0, SampleRate: DefaultSampleRate, Channels: DefaultChannels,
				Format: "mp3", FileSize: 1000, Year: "1999",
				Source: MetadataFromProbe,
			},
		},
		{
			name: "no audio stream",
			output: &ffmpeg.ProbeOutput{
				Streams: []ffmpeg.ProbeStream{{CodecType: "video", CodecName: "h264"}},
			},
			wantErr: errNoAudioStream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := interpretProbe(tt.output, 1000, "mp3")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *meta)
		})
	}
}

func TestMetadata_FileNotFound(t *testing.T) {
	decoder := newMockDecoder()
	prober := &metadataProber{decoder: decoder}

	_, err := prober.Metadata(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"), Availability{Available: true})
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = prober.Metadata(context.Background(), t.TempDir(), Availability{Available: true})
	assert.ErrorIs(t, err, ErrFileNotFound, "directories are not audio files")

	_, probeCalls, _ := decoder.calls()
	assert.Zero(t, probeCalls)
}

func TestMetadata_Paths(t *testing.T) {
	tests := []struct {
		name           string
		available      bool
		setup          func(*mockDecoder)
		expectedSource MetadataSource
		expectedProbes int
		expectedDur    float64
	}{
		{
			name:           "unavailable decoder estimates",
			available:      false,
			expectedSource: MetadataFromEstimate,
			expectedProbes: 0,
			expectedDur:    30,
		},
		{
			name:           "probe succeeds",
			available:      true,
			expectedSource: MetadataFromProbe,
			expectedProbes: 1,
			expectedDur:    12.5,
		},
		{
			name:           "probe error falls back to estimate",
			available:      true,
			setup:          func(m *mockDecoder) { m.probeErr = errMockDecoder },
			expectedSource: MetadataFromEstimate,
			expectedProbes: 1,
			expectedDur:    30,
		},
		{
			name:      "probe without audio stream falls back to estimate",
			available: true,
			setup: func(m *mockDecoder) {
				m.probeOut = &ffmpeg.ProbeOutput{Streams: []ffmpeg.ProbeStream{{CodecType: "data"}}}
			},
			expectedSource: MetadataFromEstimate,
			expectedProbes: 1,
			expectedDur:    30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteSizedFile(t, t.TempDir(), "clip.wav", 1_764_000)
			decoder := newMockDecoder()
			if tt.setup != nil {
				tt.setup(decoder)
			}
			prober := &metadataProber{decoder: decoder}

			meta, err := prober.Metadata(context.Background(), path, Availability{Available: tt.available})
			require.NoError(t, err)

			assert.Equal(t, tt.expectedSource, meta.Source)
			assert.InDelta(t, tt.expectedDur, meta.Duration, 1e-9)
			assert.Equal(t, int64(1_764_000), meta.FileSize)
			assert.Equal(t, "wav", meta.Format)
			assert.GreaterOrEqual(t, meta.Channels, 1)

			_, probeCalls, _ := decoder.calls()
			assert.Equal(t, tt.expectedProbes, probeCalls)
		})
	}
}

func TestMetadata_SniffsMIMEType(t *testing.T) {
	path := testutil.WriteSineWAV(t, t.TempDir(), "tone.wav", 0.5, 8000, 1)
	prober := &metadataProber{}

	meta, err := prober.Metadata(context.Background(), path, Availability{})
	require.NoError(t, err)

	assert.Equal(t, "audio/x-wav", meta.MIMEType)
	assert.True(t, meta.Estimated())
}

func TestProbeFailureUnwrap(t *testing.T) {
	err := &ProbeFailure{Path: "a.mp3", Err: ffmpeg.ErrProcessingTimeout}
	assert.True(t, errors.Is(err, ffmpeg.ErrProcessingTimeout))
	assert.Contains(t, err.Error(), "a.mp3")
}
