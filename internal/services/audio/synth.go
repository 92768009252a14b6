package audio

import "math/rand/v2"

const (
	fadeFraction    = 0.05
	peakBonusChance = 0.1
	peakBonusMax    = 0.3
	baseLevelMin    = 0.2
	baseLevelSpan   = 0.5
	variationSpan   = 0.2
)

// globalRandom draws from math/rand/v2's package source, which is safe for concurrent use
type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// SynthesizePeaks generates a plausible amplitude envelope of exactly width values in [0,1].
// It represents no real signal content.
func SynthesizePeaks(width int, rnd RandomSource) []float64 {
	if width <= 0 {
		return []float64{}
	}
	if rnd == nil {
		rnd = globalRandom{}
	}

	peaks := make([]float64, width)
	for i := 0; i < width; i++ {
		progress := float64(i) / float64(width)

		envelope := 1.0
		if progress < fadeFraction {
			envelope = progress / fadeFraction
		} else if progress > 1-fadeFraction {
			envelope = (1 - progress) / fadeFraction
		}

		base := baseLevelMin + rnd.Float64()*baseLevelSpan
		bonus := 0.0
		if rnd.Float64() < peakBonusChance {
			bonus = rnd.Float64() * peakBonusMax
		}
		variation := (rnd.Float64() - 0.5) * variationSpan

		peaks[i] = clamp((base+bonus+variation)*envelope, 0, 1)
	}

	return peaks
}
