package deal

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealdesk/internal/cli/handler"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
	"github.com/thenoetrevino/dealdesk/internal/user"
)

// AddCmd returns the deal add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a deal to the pipeline",
		Long: `Add a deal to the bottom of a pipeline stage.

Examples:
  # Add to the first stage
  dealdesk deal add --title="Website Redesign" --company="Acme Corp" --amount='$8,500'

  # Add to a specific stage with a contact
  dealdesk deal add --title="Annual Contract" --company="Massive Dynamic" \
    --amount=24000 --stage=negotiation --contact="Emily Wong" --due="Sep 8"

  # Quiet mode for bash capture
  DEAL_ID=$(dealdesk deal add --title="Retainer" --company="Initech" --amount=1200 --quiet)
`,
		RunE: handler.Command(handler.HandlerFunc(runAdd)),
	}

	// Required flags
	cmd.Flags().String("title", "", "Deal title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to marking flag as required", "error", err)
	}
	cmd.Flags().String("company", "", "Company the deal is with (required)")
	if err := cmd.MarkFlagRequired("company"); err != nil {
		slog.Error("failed to marking flag as required", "error", err)
	}
	cmd.Flags().String("amount", "", "Deal value, e.g. 8500 or $8,500.00 (required)")
	if err := cmd.MarkFlagRequired("amount"); err != nil {
		slog.Error("failed to marking flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().String("stage", "", "Stage ID or label (default: first stage)")
	cmd.Flags().String("contact", "", "Contact name")
	cmd.Flags().String("initials", "", "Contact initials (default: derived from contact)")
	cmd.Flags().String("due", "", "Due marker, e.g. \"Aug 28\"")
	cmd.Flags().String("owner", "", "Owner reference (default: $DEALDESK_OWNER or the current user)")

	addOutputFlags(cmd)
	return cmd
}

func runAdd(ctx context.Context, args *handler.Arguments) (any, error) {
	stageID, err := args.ParseStage("stage")
	if err != nil {
		return nil, err
	}

	svc := args.CLI.App.DealService
	d, err := svc.AddDeal(ctx, dealservice.CreateDealRequest{
		Title:           args.GetString("title", ""),
		Company:         args.GetString("company", ""),
		Amount:          args.GetString("amount", ""),
		Contact:         args.GetString("contact", ""),
		ContactInitials: args.GetString("initials", ""),
		Due:             args.GetString("due", ""),
		Owner:           args.GetString("owner", user.DefaultOwner()),
		StageID:         stageID,
	})
	if err != nil {
		return nil, err
	}

	return detail(svc, d.ID, args.CLI.Currency())
}
