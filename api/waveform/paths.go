package waveform

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/killallgit/audioengine/internal/services/waveforms"
)

// resolvePath maps a request path onto the media root. Relative paths are joined to the
// root; absolute paths are accepted only when they already lie inside it.
func resolvePath(mediaRoot, requested string) (string, error) {
	if strings.TrimSpace(requested) == "" {
		return "", fmt.Errorf("%w: path is required", waveforms.ErrInvalidPath)
	}
	if strings.ContainsRune(requested, 0) {
		return "", fmt.Errorf("%w: path contains a NUL byte", waveforms.ErrInvalidPath)
	}

	if mediaRoot == "" {
		mediaRoot = "."
	}
	root, err := filepath.Abs(mediaRoot)
	if err != nil {
		return "", fmt.Errorf("%w: resolving media root: %v", waveforms.ErrInvalidPath, err)
	}

	candidate := requested
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(root, candidate)
	}
	candidate = filepath.Clean(candidate)

	rel, err := filepath.Rel(root, candidate)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside the media root", waveforms.ErrInvalidPath, requested)
	}

	return candidate, nil
}
