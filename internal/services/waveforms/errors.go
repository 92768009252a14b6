package waveforms

import "errors"

var (
	// ErrWaveformNotFound is returned when no stored waveform exists for a file and width
	ErrWaveformNotFound = errors.New("waveform not found")

	// ErrInvalidPath is returned when a file path is empty
	ErrInvalidPath = errors.New("invalid file path")

	// ErrInvalidPeaksData is returned when peaks data is invalid
	ErrInvalidPeaksData = errors.New("invalid peaks data")
)
