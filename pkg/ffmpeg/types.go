package ffmpeg

import (
	"strconv"
	"strings"
)

// ProbeOutput represents the JSON structure returned by ffprobe
type ProbeOutput struct {
	Format  ProbeFormat   `json:"format"`
	Streams []ProbeStream `json:"streams"`
}

// ProbeFormat is the container-level section of ffprobe output
type ProbeFormat struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	Bitrate    string            `json:"bit_rate"`
	Tags       map[string]string `json:"tags"`
}

// ProbeStream is a single stream entry of ffprobe output
type ProbeStream struct {
	Index      int    `json:"index"`
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
	Duration   string `json:"duration"`
}

// AudioStream returns the first stream whose codec type is audio, or nil
func (o *ProbeOutput) AudioStream() *ProbeStream {
	if o == nil {
		return nil
	}
	for i := range o.Streams {
		if o.Streams[i].CodecType == "audio" {
			return &o.Streams[i]
		}
	}
	return nil
}

// DurationSeconds parses the format-level duration, ok is false when absent or unparseable
func (f ProbeFormat) DurationSeconds() (float64, bool) {
	return parseFloat(f.Duration)
}

// BitrateBPS parses the format-level bit rate
func (f ProbeFormat) BitrateBPS() (int, bool) {
	return parseInt(f.Bitrate)
}

// Tag looks up a format tag case-insensitively
func (f ProbeFormat) Tag(name string) string {
	for k, v := range f.Tags {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// SampleRateHz parses the stream sample rate
func (s ProbeStream) SampleRateHz() (int, bool) {
	return parseInt(s.SampleRate)
}

// PCMFormat describes a raw, headerless PCM target for transcoding
type PCMFormat struct {
	Codec      string // ffmpeg muxer/codec name, e.g. "s16le"
	SampleRate int    // Hz
	Channels   int
}

// Args renders the output-side ffmpeg arguments for the format
func (p PCMFormat) Args() []string {
	return []string{
		"-f", p.Codec,
		"-acodec", "pcm_" + p.Codec,
		"-ac", strconv.Itoa(p.Channels),
		"-ar", strconv.Itoa(p.SampleRate),
	}
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
