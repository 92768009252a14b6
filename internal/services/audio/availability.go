package audio

import (
	"context"
	"log"
	"time"
)

// Availability is the decoder capability snapshot taken once at initialization.
// It is never refreshed; a decoder installed or removed later goes unnoticed until restart.
type Availability struct {
	Available bool      `json:"available"`
	Formats   int       `json:"formats"` // Number of demuxable formats reported
	Reason    string    `json:"reason,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// CheckAvailability queries the decoder's format listing. It never fails:
// a missing binary, execution error or timeout all yield Available=false.
func CheckAvailability(ctx context.Context, decoder Decoder) Availability {
	result := Availability{CheckedAt: time.Now().UTC()}

	if decoder == nil {
		result.Reason = "no decoder configured"
		log.Printf("[INFO] audio: decoder unavailable (%s), using estimates and synthetic waveforms", result.Reason)
		return result
	}

	formats, err := decoder.ListFormats(ctx)
	if err != nil {
		result.Reason = err.Error()
		log.Printf("[INFO] audio: decoder unavailable, using estimates and synthetic waveforms: %v", err)
		return result
	}

	result.Available = true
	result.Formats = len(formats)
	log.Printf("[INFO] audio: decoder available (%d formats)", result.Formats)
	return result
}
