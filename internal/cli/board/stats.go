package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealdesk/internal/cli/handler"
	"github.com/thenoetrevino/dealdesk/internal/cli/styles"
	"github.com/thenoetrevino/dealdesk/internal/money"
)

// StatsCmd returns the board stats subcommand
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show deal count and total value per stage",
		Args:  cobra.NoArgs,
		RunE:  handler.Command(handler.HandlerFunc(runStats)),
	}

	addOutputFlags(cmd)
	return cmd
}

// statsOutput is the aggregation view of the board
type statsOutput struct {
	Stages []stageStat     `json:"stages"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`

	currency string
}

// Render implements cli.Renderer
func (o *statsOutput) Render() string {
	width := 0
	for _, s := range o.Stages {
		width = max(width, len(s.Label))
	}

	var b strings.Builder
	for _, s := range o.Stages {
		fmt.Fprintf(&b, "%s %-*s %3d  %s\n",
			styles.StageMarker(s.Accent), width, s.Label, s.Count,
			styles.AmountStyle.Render(money.Format(s.Total, o.currency)))
	}
	fmt.Fprintf(&b, "  %-*s %3d  %s", width, "Pipeline", o.Count,
		styles.AmountStyle.Render(money.Format(o.Total, o.currency)))
	return b.String()
}

func runStats(_ context.Context, args *handler.Arguments) (any, error) {
	stats, count, total := newStageStats(args.CLI.App.DealService.Summaries())
	return &statsOutput{
		Stages:   stats,
		Count:    count,
		Total:    total,
		currency: args.CLI.Currency(),
	}, nil
}
