package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealdesk/internal/cli"
	"github.com/thenoetrevino/dealdesk/internal/cli/board"
	"github.com/thenoetrevino/dealdesk/internal/cli/deal"
	"github.com/thenoetrevino/dealdesk/internal/cli/setup"
	"github.com/thenoetrevino/dealdesk/internal/launcher"
)

var rootCmd = &cobra.Command{
	Use:   "dealdesk",
	Short: "dealdesk - a deal pipeline board for small teams",
	Long: `dealdesk keeps the deals of a sales pipeline ordered across stages.

Run without arguments to open the board, or use the deal and board
commands from scripts.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launcher.Launch(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(deal.DealCmd())
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(setup.SetupCmd())
	rootCmd.AddCommand(tuiCmd())

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		cmd.PrintErrln("Error:", err)
		cmd.PrintErrln(cmd.UsageString())
		return &cli.ExitError{Code: cli.ExitUsage, Err: err}
	})
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launcher.Launch(cmd.Context())
		},
	}
}

// Execute runs the root command. Errors already reported by a command come
// back as *cli.ExitError.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
