package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/simonhull/cuesheet"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			info := cuesheet.ReadBuildInfo()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "cuesheet v%s\n", info.Version)
			fmt.Fprintf(w, "  Commit:     %s\n", info.ShortCommit())
			fmt.Fprintf(w, "  Committed:  %s\n", info.Time)
			fmt.Fprintf(w, "  Go Version: %s\n", info.GoVersion)
			fmt.Fprintf(w, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
