package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance. A zero timeout leaves invocations bounded only by the caller's context.
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}

	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}

	return nil
}

// ListFormats queries ffmpeg for the container formats it can demux
func (f *FFmpeg) ListFormats(ctx context.Context) ([]string, error) {
	if err := f.ValidateBinaries(); err != nil {
		return nil, err
	}

	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.ffmpegPath, "-hide_banner", "-formats")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, NewProcessingError("list_formats", f.ffmpegPath, contextErr(ctx, err), stderr.String())
	}

	formats := parseFormats(stdout.String())
	if len(formats) == 0 {
		return nil, NewProcessingError("list_formats", f.ffmpegPath, ErrNoFormats, stderr.String())
	}
	return formats, nil
}

// Transcode decodes input and writes it to output as raw PCM in the given format
func (f *FFmpeg) Transcode(ctx context.Context, input, output string, format PCMFormat) error {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-i", input,
		"-vn", // Ignore cover art and video streams
	}
	args = append(args, format.Args()...)
	args = append(args, "-y", output)

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return NewProcessingError("pcm_transcode", input, contextErr(ctx, err), stderr.String())
	}

	return nil
}

func (f *FFmpeg) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, f.timeout)
}

// contextErr replaces the "signal: killed" error exec reports on deadline with something callers can match
func contextErr(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrProcessingTimeout, err)
	case errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("%w: %v", context.Canceled, err)
	default:
		return err
	}
}

// parseFormats extracts demuxable format names from `ffmpeg -formats` output.
// Rows look like " DE wav             WAV / WAVE (Waveform Audio)" and follow a "--" separator line.
func parseFormats(out string) []string {
	var formats []string
	seen := make(map[string]bool)
	inTable := false

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !inTable {
			if line != "" && strings.Trim(line, "-") == "" {
				inTable = true
			}
			continue
		}

		fields := strings.Fields(line)
		flags := ""
		i := 0
		for i < len(fields)-1 && isFlagField(fields[i]) {
			flags += fields[i]
			i++
		}
		if i == 0 || i >= len(fields) || !strings.Contains(flags, "D") {
			continue
		}

		for _, name := range strings.Split(fields[i], ",") {
			if name != "" && !seen[name] {
				seen[name] = true
				formats = append(formats, name)
			}
		}
	}
	return formats
}

func isFlagField(s string) bool {
	if len(s) > 3 {
		return false
	}
	for _, r := range s {
		if r != 'D' && r != 'E' && r != 'd' && r != '.' {
			return false
		}
	}
	return true
}
