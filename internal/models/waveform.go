package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Waveform is a persisted decoded waveform for one file at one width.
// Size and ModTime fingerprint the file the peaks were computed from.
type Waveform struct {
	gorm.Model
	FilePath        string  `json:"file_path" gorm:"not null;uniqueIndex:idx_waveform_file_width"`
	Width           int     `json:"width" gorm:"not null;uniqueIndex:idx_waveform_file_width"`
	FileSize        int64   `json:"file_size" gorm:"not null"`
	ModTime         int64   `json:"mod_time" gorm:"not null"` // Unix nanoseconds
	PeaksData       []byte  `json:"-" gorm:"type:blob;not null"` // JSON-encoded []float64
	Duration        float64 `json:"duration" gorm:"not null"`    // Duration in seconds
	SamplesPerPixel int     `json:"samples_per_pixel"`
	SampleRate      int     `json:"sample_rate,omitempty" gorm:"default:44100"`
	Channels        int     `json:"channels,omitempty" gorm:"default:2"`
}

// Peaks returns the decoded peaks data
func (w *Waveform) Peaks() ([]float64, error) {
	var peaks []float64
	if err := json.Unmarshal(w.PeaksData, &peaks); err != nil {
		return nil, err
	}
	return peaks, nil
}

// SetPeaks encodes and sets the peaks data
func (w *Waveform) SetPeaks(peaks []float64) error {
	data, err := json.Marshal(peaks)
	if err != nil {
		return err
	}
	w.PeaksData = data
	w.Width = len(peaks)
	return nil
}

// SetFingerprint records the size and modification time of the source file
func (w *Waveform) SetFingerprint(size int64, modTime time.Time) {
	w.FileSize = size
	w.ModTime = modTime.UnixNano()
}

// Matches reports whether the row was computed from a file with this size and modification time
func (w *Waveform) Matches(size int64, modTime time.Time) bool {
	return w.FileSize == size && w.ModTime == modTime.UnixNano()
}
