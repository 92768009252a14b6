package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
)

// Probe runs ffprobe against a file and returns its format and stream sections
func (f *FFmpeg) Probe(ctx context.Context, filePath string) (*ProbeOutput, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	args := []string{
		"-v", "quiet",
		"-show_format",
		"-show_streams",
		"-of", "json",
		filePath,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, NewProcessingError("probe", filePath, contextErr(ctx, err), stderr.String())
	}

	var output ProbeOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return nil, NewProcessingError("probe_parsing", filePath, err, "")
	}

	return &output, nil
}
