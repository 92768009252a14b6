package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/killallgit/audioengine/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// setupCommandTest points configuration at a scratch directory with the decoder
// disabled and returns that directory
func setupCommandTest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("AUDIOENGINE_DATABASE_PATH", filepath.Join(dir, "test.db"))
	t.Setenv("AUDIOENGINE_DECODER_ENABLED", "false")
	t.Setenv("AUDIOENGINE_DECODER_TEMP_DIR", dir)
	t.Setenv("AUDIOENGINE_STORAGE_MEDIA_ROOT", dir)

	resetFlags(rootCmd)
	return dir
}

// resetFlags restores every flag to its default; the command tree is global and
// flag values survive between executions
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// executeCommand runs the root command with args and returns everything it printed
func executeCommand(ctx context.Context, args ...string) (string, error) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	// Subcommands keep the context of their first execution unless it is replaced
	if sub, _, err := cmd.Find(args); err == nil && sub != nil {
		sub.SetContext(ctx)
	}

	err := cmd.ExecuteContext(ctx)
	return buf.String(), err
}
