package cmd

import (
	"os"

	"github.com/killallgit/audioengine/pkg/config"
	"github.com/spf13/cobra"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "audioengine",
	Short: "Audio metadata and waveform extraction engine",
	Long: `Audio Engine - metadata and display waveforms for audio files

Reads duration, sample rate, channels and tags from audio files and reduces
them to fixed-width peak arrays for waveform displays. When ffmpeg/ffprobe are
missing or fail on a file, durations are estimated from the file size and a
plausible synthetic waveform is produced instead, so every existing file gets
an answer.

Features:
  • ffprobe metadata with size-based estimation fallback
  • Peak extraction from 8 kHz mono PCM decoded by ffmpeg
  • In-memory and SQLite memoization of decoded waveforms
  • HTTP API with Swagger documentation
  • Batch precomputation with a bounded worker pool`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config/settings.yaml)")
}

// loadConfig loads the configuration before any command that needs it runs
func loadConfig(cmd *cobra.Command, args []string) error {
	// Version doesn't need config
	if cmd.Name() == "version" {
		return nil
	}
	return config.InitWithPath(configFile)
}
