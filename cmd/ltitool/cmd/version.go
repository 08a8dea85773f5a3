package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build information, set via -ldflags.
var (
	Version   = "0.1.0"
	GitCommit = "development"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ltitool v%s\n", Version)
			fmt.Fprintf(out, "  Git Commit: %s\n", GitCommit)
			fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		},
	}
}
