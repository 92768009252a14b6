package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/killallgit/audioengine/cmd.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// buildInfo is what the version command reports
type buildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// currentBuildInfo fills commit and time from the VCS stamp the go tool embeds
// when ldflags did not set them
func currentBuildInfo() buildInfo {
	info := buildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = setting.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" {
				info.BuildTime = setting.Value
			}
		}
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Display version information about the Audio Engine.

This includes the version number, git commit hash, build time,
and runtime information.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print just the version number")
	versionCmd.Flags().Bool("json", false, "print version information as JSON")
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	short, _ := cmd.Flags().GetBool("short")
	asJSON, _ := cmd.Flags().GetBool("json")

	if short {
		fmt.Fprintf(out, "v%s\n", Version)
		return nil
	}

	info := currentBuildInfo()
	if asJSON {
		return printJSON(cmd, info)
	}

	fmt.Fprintln(out, "Audio Engine")
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintf(out, "Version:      v%s\n", info.Version)
	fmt.Fprintf(out, "Git Commit:   %s\n", info.GitCommit)
	fmt.Fprintf(out, "Build Time:   %s\n", info.BuildTime)
	fmt.Fprintf(out, "Go Version:   %s\n", info.GoVersion)
	fmt.Fprintf(out, "OS/Arch:      %s\n", info.Platform)
	fmt.Fprintln(out, strings.Repeat("-", 40))
	return nil
}
