package types

import (
	"github.com/killallgit/audioengine/internal/database"
	"github.com/killallgit/audioengine/internal/services/waveforms"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB              *database.DB // nil when the waveform store is disabled
	WaveformService waveforms.WaveformService
	MediaRoot       string // Request paths resolve inside this directory
	DefaultWidth    int
	MaxWidth        int
	Version         string
}
