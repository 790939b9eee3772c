package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/droidport/droidport/internal/buildscan"
)

// scanCmd exposes the build-tree scanner and subproject resolver on
// their own, for inspecting a checkout without importing it.
var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "List build files and the resolved Android build subdirectory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	files, err := buildscan.Scan(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return &buildscan.NoBuildProjectError{Dir: root}
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		rel, err := filepath.Rel(root, f.Path)
		if err != nil {
			rel = f.Path
		}
		fmt.Fprintf(out, "%-16s %s\n", f.Kind, filepath.ToSlash(rel))
	}

	subdir, err := buildscan.ResolveSubdir(root, files)
	if err != nil {
		return err
	}
	if subdir == "" {
		fmt.Fprintln(out, "subdir: . (repository root)")
	} else {
		fmt.Fprintf(out, "subdir: %s\n", filepath.ToSlash(subdir))
	}
	return nil
}
