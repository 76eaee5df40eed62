package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "memsetup",
	Short: "Bootstrap claude-mem - persistent memory for Claude Code",
	Long: `Memsetup provisions a machine for the claude-mem plugin: installs the
bun and uv runtimes, lays out the state directories, registers the local
plugin marketplace, builds and mirrors the plugin, and starts the worker
service.

Every step is idempotent. Re-run it any time; satisfied steps are skipped.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation runs the full install.
		return runInstall(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("memsetup %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	addInstallFlags(rootCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
