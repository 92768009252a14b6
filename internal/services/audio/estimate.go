package audio

// Throughput assumptions per format, in bytes of file per second of audio
const (
	wavBytesPerSecond  = 44100 * 2 * 2 // CD-quality stereo PCM
	mp3BytesPerSecond  = 128000 / 8    // 128 kbps
	flacBytesPerSecond = 100000

	defaultEstimatedDuration = 300.0
)

// EstimateDuration guesses a duration from file size and format, clamped to [30, 7200] seconds
func EstimateDuration(fileSize int64, format string) float64 {
	var duration float64
	switch format {
	case "wav":
		duration = float64(fileSize) / wavBytesPerSecond
	case "mp3":
		duration = float64(fileSize) / mp3BytesPerSecond
	case "flac":
		duration = float64(fileSize) / flacBytesPerSecond
	default:
		duration = defaultEstimatedDuration
	}
	return clamp(duration, MinEstimatedDuration, MaxEstimatedDuration)
}

// Estimate builds metadata without decoding anything. It never fails.
func Estimate(fileSize int64, format string) *AudioMetadata {
	return &AudioMetadata{
		Duration:   EstimateDuration(fileSize, format),
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		Format:     format,
		FileSize:   fileSize,
		Source:     MetadataFromEstimate,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
