package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("pcm"), 0o600))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestService_Sweep(t *testing.T) {
	dir := t.TempDir()
	stale := touch(t, dir, "waveform_111.raw", 2*time.Hour)
	fresh := touch(t, dir, "waveform_222.raw", time.Minute)
	unrelated := touch(t, dir, "episode_1.mp3", 2*time.Hour)

	svc := NewService(dir, "waveform_*.raw", time.Hour, time.Hour)
	removed := svc.Sweep()

	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, unrelated)
}

func TestService_SweepMissingDir(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "missing"), "waveform_*.raw", time.Hour, time.Hour)
	assert.Equal(t, 0, svc.Sweep())
}

func TestService_StartStop(t *testing.T) {
	dir := t.TempDir()
	stale := touch(t, dir, "waveform_333.raw", 2*time.Hour)

	svc := NewService(dir, "waveform_*.raw", time.Hour, 10*time.Millisecond)
	svc.Start(context.Background())
	defer svc.Stop()

	assert.NoFileExists(t, stale, "initial sweep should run synchronously on Start")
}

func TestRemoveTempFile(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "waveform_444.raw", 0)

	RemoveTempFile(path)
	assert.NoFileExists(t, path)

	// Missing and empty paths are silently ignored
	RemoveTempFile(path)
	RemoveTempFile("")
}
