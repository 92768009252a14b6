package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/killallgit/audioengine/pkg/config"
	"github.com/spf13/cobra"
)

var (
	waveformWidth int
	waveformStore bool
)

// waveformCmd represents the waveform command
var waveformCmd = &cobra.Command{
	Use:   "waveform <file>",
	Short: "Print display peaks for an audio file",
	Long: `Print a fixed-width array of peaks in [0,1] for an audio file as JSON.

The file is decoded to 8 kHz mono PCM with ffmpeg and reduced to one peak per
bucket. When ffmpeg is unavailable or fails, a synthetic waveform of the same
width is printed and the "source" field reads "synthetic".

Example:
  audioengine waveform episode.mp3
  audioengine waveform --width 1200 episode.mp3
  audioengine waveform --store episode.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: runWaveform,
}

func init() {
	rootCmd.AddCommand(waveformCmd)
	waveformCmd.Flags().IntVar(&waveformWidth, "width", 0, "number of peaks (default waveform.default_width)")
	waveformCmd.Flags().BoolVar(&noDecoder, "no-decoder", false, "skip ffmpeg and synthesize the waveform")
	waveformCmd.Flags().BoolVar(&waveformStore, "store", false, "read and write decoded waveforms in the configured database")
}

func runWaveform(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	width := waveformWidth
	if width == 0 {
		width = cfg.Waveform.DefaultWidth
	}
	if width < 1 || width > cfg.Waveform.MaxWidth {
		return fmt.Errorf("width must be between 1 and %d, got %d", cfg.Waveform.MaxWidth, width)
	}

	filePath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path %s: %w", args[0], err)
	}

	c, err := buildComponents(cmd.Context(), cfg, componentOptions{DisableDecoder: noDecoder, UseStore: waveformStore})
	if err != nil {
		return err
	}
	defer c.Close()

	waveform, err := c.service.GetWaveform(cmd.Context(), filePath, width)
	if err != nil {
		return err
	}
	return printJSON(cmd, waveform)
}
