package board

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealdesk/internal/cli/handler"
	"github.com/thenoetrevino/dealdesk/internal/seed"
)

// SeedCmd returns the board seed subcommand
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty board with sample deals",
		Long: `Add five sample deals across the first four stages.

Refuses to run when the board already has deals.`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runSeed)),
	}

	addOutputFlags(cmd)
	return cmd
}

type seedOutput struct {
	Created []string `json:"created"`
}

// Render implements cli.Renderer
func (o *seedOutput) Render() string {
	return fmt.Sprintf("Seeded %d deals. Run 'dealdesk board show' to see them.", len(o.Created))
}

func runSeed(ctx context.Context, args *handler.Arguments) (any, error) {
	deals, err := seed.Load(ctx, args.CLI.App.DealService)
	if err != nil {
		return nil, err
	}

	out := &seedOutput{Created: make([]string, len(deals))}
	for i, d := range deals {
		out.Created[i] = d.ID.String()
	}
	return out, nil
}
