// Package testutil authors audio fixtures for tests that need real files on disk.
package testutil

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteSineWAV writes a 16-bit PCM WAV containing a sine tone and returns its path
func WriteSineWAV(t testing.TB, dir, name string, seconds float64, sampleRate, channels int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create fixture dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav fixture: %v", err)
	}
	defer f.Close()

	frames := int(seconds * float64(sampleRate))
	data := make([]int, 0, frames*channels)
	for i := 0; i < frames; i++ {
		v := int(0.8 * 32767 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)))
		for c := 0; c < channels; c++ {
			data = append(data, v)
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write wav fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav encoder: %v", err)
	}
	return path
}

// WriteSizedFile writes a file of exactly size bytes (zero filled) and returns its path
func WriteSizedFile(t testing.TB, dir, name string, size int64) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create fixture dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()
	if err := f.Truncate(size); err != nil {
		t.Fatalf("size fixture: %v", err)
	}
	return path
}

// PCM16 encodes samples as 16-bit signed little-endian bytes
func PCM16(samples ...int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}
