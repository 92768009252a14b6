package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/killallgit/audioengine/pkg/config"
	"github.com/spf13/cobra"
)

var noDecoder bool

// metadataCmd represents the metadata command
var metadataCmd = &cobra.Command{
	Use:   "metadata <file>",
	Short: "Print metadata for an audio file",
	Long: `Print duration, sample rate, channels, bit rate and tags of an audio file as JSON.

Metadata comes from ffprobe when it is available and can read the file.
Otherwise the duration is estimated from the file size and the "source"
field reads "estimate".

Example:
  audioengine metadata episode.mp3
  audioengine metadata --no-decoder episode.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: runMetadata,
}

func init() {
	rootCmd.AddCommand(metadataCmd)
	metadataCmd.Flags().BoolVar(&noDecoder, "no-decoder", false, "skip ffmpeg and use size estimates")
}

func runMetadata(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	filePath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path %s: %w", args[0], err)
	}

	c, err := buildComponents(cmd.Context(), cfg, componentOptions{DisableDecoder: noDecoder})
	if err != nil {
		return err
	}
	defer c.Close()

	metadata, err := c.service.GetMetadata(cmd.Context(), filePath)
	if err != nil {
		return err
	}
	return printJSON(cmd, metadata)
}

// printJSON writes v as indented JSON to the command's output
func printJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
