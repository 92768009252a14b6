package audio

import (
	"encoding/binary"
)

const bytesPerSample = 2

// ReduceToPeaks reduces 16-bit signed little-endian mono samples to width peak magnitudes.
// Each bucket holds floor(len(raw)/(width*2)) samples and reports max(|s|)/32768; buckets
// past the data, or every bucket when the buffer is shorter than width samples, are 0.
func ReduceToPeaks(raw []byte, width int) []float64 {
	if width <= 0 {
		return []float64{}
	}

	peaks := make([]float64, width)
	samplesPerBucket := len(raw) / (width * bytesPerSample)
	if samplesPerBucket == 0 {
		return peaks
	}

	bucketBytes := samplesPerBucket * bytesPerSample
	for i := 0; i < width; i++ {
		start := i * bucketBytes
		end := min(start+bucketBytes, len(raw))

		var peak float64
		for j := start; j+bytesPerSample <= end; j += bytesPerSample {
			sample := int16(binary.LittleEndian.Uint16(raw[j:]))
			amplitude := float64(sample) / 32768
			if amplitude < 0 {
				amplitude = -amplitude
			}
			if amplitude > peak {
				peak = amplitude
			}
		}
		peaks[i] = peak
	}

	return peaks
}

// samplesPerPixel is computed from metadata alone and is never reconciled with the
// bucket size ReduceToPeaks used; it is display information only.
func samplesPerPixel(meta *AudioMetadata, width int) int {
	if width <= 0 {
		return 0
	}
	return int(meta.Duration * float64(meta.SampleRate) / float64(width))
}
