package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/droidport/droidport/internal/buildscan"
	"github.com/droidport/droidport/internal/repohost"
	"github.com/droidport/droidport/pkg/buildinfo"
	"github.com/droidport/droidport/pkg/exitcode"
	"github.com/droidport/droidport/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "droidport",
		Short: "Bootstrap package metadata from a project's source location",
		Long: `Droidport inspects a project URL or local working copy and derives the
facts needed to build it: version-control system and address, the
Android build subdirectory, package identifier, and version.

Examples:
   droidport import -u https://github.com/x/y   # Import a hosted project
   droidport import                             # Import the working copy in .
   droidport scan ./checkout                    # Show build files and the resolved subdir`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("droidport {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(importCmd)
	cmd.AddCommand(scanCmd)
	cmd.AddCommand(versionCmd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitCodeFor(err))
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// exitCodeFor maps an error to the CLI exit code for its kind.
func exitCodeFor(err error) int {
	var addrErr *repohost.InvalidRepoAddressError
	switch {
	case repohost.IsUnsupportedLocation(err):
		return exitcode.UnsupportedLocation
	case errors.As(err, &addrErr):
		return exitcode.InvalidAddress
	case repohost.IsScrapeFetch(err):
		return exitcode.NetworkError
	case buildscan.IsScanIO(err):
		return exitcode.FileSystemError
	case buildscan.IsNoBuildProject(err):
		return exitcode.NoProjectFound
	default:
		return exitcode.GeneralError
	}
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	config := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "droidport",
	}

	if err := logger.Initialize(config); err != nil {
		_, _ = os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(exitcode.ConfigError)
	}
}
