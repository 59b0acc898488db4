package deal

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealdesk/internal/cli/handler"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
)

// EditCmd returns the deal edit subcommand
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a deal's fields",
		Long: `Edit a deal. Only the flags you pass are changed; the deal keeps its place on the board.

Examples:
  dealdesk deal edit 3f2a... --amount='$9,000'
  dealdesk deal edit --id 3f2a... --contact="Sam Lee" --due="Oct 1" --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runEdit)),
	}

	cmd.Flags().String("id", "", "Deal ID (can also be provided as positional argument)")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("company", "", "New company")
	cmd.Flags().String("amount", "", "New value")
	cmd.Flags().String("contact", "", "New contact name")
	cmd.Flags().String("initials", "", "New contact initials")
	cmd.Flags().String("due", "", "New due marker")
	cmd.Flags().String("owner", "", "New owner reference")

	addOutputFlags(cmd)
	return cmd
}

func runEdit(ctx context.Context, args *handler.Arguments) (any, error) {
	id, err := args.ParseDealID()
	if err != nil {
		return nil, err
	}

	svc := args.CLI.App.DealService
	if _, err := svc.EditDeal(ctx, dealservice.UpdateDealRequest{
		DealID:          id,
		Title:           args.StringPtr("title"),
		Company:         args.StringPtr("company"),
		Amount:          args.StringPtr("amount"),
		Contact:         args.StringPtr("contact"),
		ContactInitials: args.StringPtr("initials"),
		Due:             args.StringPtr("due"),
		Owner:           args.StringPtr("owner"),
	}); err != nil {
		return nil, err
	}

	return detail(svc, id, args.CLI.Currency())
}
