package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thedotmack/memsetup/internal/core"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the installed end state without changing anything",
	Long: `Re-run just the verification checks: both runtimes resolve, the plugin
tree is mirrored, and the available slash commands are listed. Nothing
is installed or modified.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := buildContext()
		if err != nil {
			return err
		}

		v := core.VerifyInstall(ctx)
		out := cmd.OutOrStdout()

		for _, e := range v.Errors {
			fmt.Fprintf(out, "✗ %s\n", e)
		}
		for _, n := range v.Notes {
			fmt.Fprintf(out, "  %s\n", n)
		}
		for _, c := range v.Commands {
			fmt.Fprintf(out, "✓ /%s available\n", c.Name)
		}

		if n := v.ErrorCount(); n > 0 {
			return fmt.Errorf("%d verification problem(s)", n)
		}
		fmt.Fprintln(out, "Installation healthy.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
