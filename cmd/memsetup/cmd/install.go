package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thedotmack/memsetup/internal/core"
	"github.com/thedotmack/memsetup/internal/ui"
)

var (
	flagDir         string
	flagPlain       bool
	flagSkipService bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Run the full bootstrap pipeline",
	Long: `Run every bootstrap step in order: tool install, shell PATH setup,
directory layout, marketplace registration, build and mirror, vector
database prewarm, worker launch, and a final verification pass.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd)
	},
}

// addInstallFlags registers the install flags as persistent so the bare
// `memsetup` invocation accepts them too.
func addInstallFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&flagDir, "dir", ".", "plugin source directory to build and install")
	cmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "line-oriented output without the live progress view")
	cmd.PersistentFlags().BoolVar(&flagSkipService, "skip-service", false, "skip the prewarm and worker steps")
}

func init() {
	rootCmd.AddCommand(installCmd)
}

// buildContext resolves the plugin source directory and assembles the
// pipeline context with its file logger attached.
func buildContext() (*core.Context, error) {
	projectDir, err := filepath.Abs(flagDir)
	if err != nil {
		return nil, fmt.Errorf("resolving plugin directory: %w", err)
	}
	if info, err := os.Stat(projectDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("plugin directory %s does not exist", projectDir)
	}

	ctx, err := core.NewContext(projectDir)
	if err != nil {
		return nil, err
	}
	ctx.SkipService = flagSkipService
	ctx.Log = core.NewLogger(ctx.Paths.LogsDir)
	return ctx, nil
}

func runInstall(cmd *cobra.Command) error {
	ctx, err := buildContext()
	if err != nil {
		return err
	}

	orch := core.NewOrchestrator(ctx)

	var report *core.Report
	var runErr error
	if useProgressView(cmd) {
		report, runErr = ui.RunWithProgress(orch)
	} else {
		orch.SetObserver(&ui.PlainReporter{Out: cmd.OutOrStdout()})
		report, runErr = orch.Run()
	}

	ui.Summary(cmd.OutOrStdout(), report, ctx)

	if runErr != nil {
		return runErr
	}
	if ctx.Verify != nil && ctx.Verify.ErrorCount() > 0 {
		return fmt.Errorf("%d verification problem(s)", ctx.Verify.ErrorCount())
	}
	return nil
}

// useProgressView decides between the live bubbletea view and plain lines.
func useProgressView(cmd *cobra.Command) bool {
	if flagPlain {
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
