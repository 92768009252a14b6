package audio

import (
	"errors"
	"fmt"
)

// ErrFileNotFound is the only error GetMetadata and GetWaveform return
var ErrFileNotFound = errors.New("audio file not found")

var errNoAudioStream = errors.New("no audio stream found")

// ProbeFailure is recovered by falling back to the size-based estimate
type ProbeFailure struct {
	Path string
	Err  error
}

func (e *ProbeFailure) Error() string {
	return fmt.Sprintf("probe failed for %s: %v", e.Path, e.Err)
}

func (e *ProbeFailure) Unwrap() error {
	return e.Err
}

// DecodeFailure is recovered by falling back to a synthetic waveform
type DecodeFailure struct {
	Path  string
	Stage string // temp_file, transcode, read
	Err   error
}

func (e *DecodeFailure) Error() string {
	return fmt.Sprintf("decode failed for %s at %s: %v", e.Path, e.Stage, e.Err)
}

func (e *DecodeFailure) Unwrap() error {
	return e.Err
}

func fileNotFound(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
}
