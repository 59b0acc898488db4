package deal

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealdesk/internal/cli/handler"
)

// RemoveCmd returns the deal rm subcommand
func RemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"delete"},
		Short:   "Remove a deal from the pipeline",
		Args:    cobra.MaximumNArgs(1),
		RunE:    handler.Command(handler.HandlerFunc(runRemove)),
	}

	cmd.Flags().String("id", "", "Deal ID (can also be provided as positional argument)")

	addOutputFlags(cmd)
	return cmd
}

// removed is the result of a successful delete
type removed struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Stage string `json:"stage"`
}

// GetID returns the deal ID for quiet output
func (r *removed) GetID() string {
	return r.ID
}

// Render implements cli.Renderer
func (r *removed) Render() string {
	return fmt.Sprintf("Removed %q from %s", r.Title, r.Stage)
}

func runRemove(ctx context.Context, args *handler.Arguments) (any, error) {
	id, err := args.ParseDealID()
	if err != nil {
		return nil, err
	}

	svc := args.CLI.App.DealService
	d, err := svc.GetDeal(id)
	if err != nil {
		return nil, err
	}
	if err := svc.RemoveDeal(ctx, id); err != nil {
		return nil, err
	}

	return &removed{ID: d.ID.String(), Title: d.Title, Stage: d.StageLabel}, nil
}
