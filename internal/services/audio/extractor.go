package audio

import (
	"context"
	"os"

	"github.com/killallgit/audioengine/internal/services/cleanup"
	"github.com/killallgit/audioengine/pkg/ffmpeg"
)

// TempPattern names the scratch files extraction writes; the cleanup sweeper matches on it
const TempPattern = "waveform_*.raw"

// pcmExtractor transcodes a file to TargetPCM through a per-call temp file
type pcmExtractor struct {
	decoder Decoder
	tempDir string
}

// Extract returns the raw TargetPCM bytes for path. The temp file is removed on
// every return path, including cancellation; failures come back as *DecodeFailure.
func (e *pcmExtractor) Extract(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &DecodeFailure{Path: path, Stage: "transcode", Err: err}
	}

	tempFile, err := os.CreateTemp(e.tempDir, TempPattern)
	if err != nil {
		return nil, &DecodeFailure{Path: path, Stage: "temp_file", Err: err}
	}
	tempPath := tempFile.Name()
	tempFile.Close()
	defer cleanup.RemoveTempFile(tempPath)

	if err := e.decoder.Transcode(ctx, path, tempPath, TargetPCM); err != nil {
		return nil, &DecodeFailure{Path: path, Stage: "transcode", Err: err}
	}

	raw, err := os.ReadFile(tempPath)
	if err != nil {
		return nil, &DecodeFailure{Path: path, Stage: "read", Err: err}
	}
	if len(raw) == 0 {
		return nil, &DecodeFailure{Path: path, Stage: "read", Err: ffmpeg.ErrEmptyOutput}
	}

	return raw, nil
}
