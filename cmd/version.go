package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/droidport/droidport/pkg/buildinfo"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the droidport version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "droidport %s\n", buildinfo.BinaryVersion)

		extended, _ := cmd.Flags().GetBool("extended")
		if extended {
			if mv := buildinfo.ModuleVersion(); mv != "" {
				fmt.Fprintf(out, "module:   %s\n", mv)
			}
			fmt.Fprintf(out, "go:       %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("extended", false, "Show detailed build information")
}
