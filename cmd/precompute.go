package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/killallgit/audioengine/internal/services/workers"
	"github.com/killallgit/audioengine/pkg/config"
	"github.com/spf13/cobra"
)

var (
	precomputeWidth    int
	precomputeWorkers  int
	precomputeMetadata bool
)

// precomputeCmd represents the precompute command
var precomputeCmd = &cobra.Command{
	Use:   "precompute <files...>",
	Short: "Decode and store waveforms for many files",
	Long: `Compute waveforms for a batch of files with a bounded pool of workers.

Decoded waveforms are written to the configured database so the server can
answer later requests without decoding again. Files that fall back to a
synthetic waveform are reported but not stored.

Example:
  audioengine precompute media/*.mp3
  audioengine precompute --workers 4 --width 1200 media/*.flac
  audioengine precompute --metadata media/*.wav`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrecompute,
}

func init() {
	rootCmd.AddCommand(precomputeCmd)
	precomputeCmd.Flags().IntVar(&precomputeWidth, "width", 0, "number of peaks (default waveform.default_width)")
	precomputeCmd.Flags().IntVar(&precomputeWorkers, "workers", 0, "concurrent decodes (default processing.workers)")
	precomputeCmd.Flags().BoolVar(&precomputeMetadata, "metadata", false, "only probe metadata instead of computing waveforms")
}

func runPrecompute(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	width := precomputeWidth
	if width == 0 {
		width = cfg.Waveform.DefaultWidth
	}
	if width < 1 || width > cfg.Waveform.MaxWidth {
		return fmt.Errorf("width must be between 1 and %d, got %d", cfg.Waveform.MaxWidth, width)
	}

	workerCount := precomputeWorkers
	if workerCount <= 0 {
		workerCount = cfg.Processing.Workers
	}

	jobType := workers.JobTypeWaveform
	if precomputeMetadata {
		jobType = workers.JobTypeMetadata
	}

	jobs := make([]*workers.Job, 0, len(args))
	for i, arg := range args {
		filePath, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("invalid path %s: %w", arg, err)
		}
		jobs = append(jobs, &workers.Job{ID: i + 1, Type: jobType, Path: filePath, Width: width})
	}

	c, err := buildComponents(cmd.Context(), cfg, componentOptions{UseStore: !precomputeMetadata})
	if err != nil {
		return err
	}
	defer c.Close()

	pool := workers.NewWorkerPool(workerCount)
	pool.RegisterProcessor(workers.NewWaveformProcessor(c.service))
	pool.RegisterProcessor(workers.NewMetadataProcessor(c.service))

	results, err := pool.ProcessAll(cmd.Context(), jobs)
	printResults(cmd, results)
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		if result.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(jobs))
	}
	return nil
}

func printResults(cmd *cobra.Command, results []workers.JobResult) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILE\tSOURCE\tPEAKS\tDURATION\tELAPSED\tERROR")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2fs\t%s\t%s\n", r.JobID, filepath.Base(r.Path), r.Source, r.Peaks, r.Duration, r.Elapsed.Round(time.Millisecond), r.Error)
	}
	w.Flush()
}
