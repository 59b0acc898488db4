// Package board holds the cli commands that work on the whole pipeline
// e.g., dealdesk board ...
package board

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	engine "github.com/thenoetrevino/dealdesk/internal/board"
	"github.com/thenoetrevino/dealdesk/internal/models"
)

// BoardCmd returns the board parent command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "View and seed the deal pipeline",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(StatsCmd())
	cmd.AddCommand(SeedCmd())

	return cmd
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")
}

// stageStat is one stage's count and total value
type stageStat struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Accent string          `json:"accent"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

func newStageStats(summaries []models.StageSummary) ([]stageStat, int, decimal.Decimal) {
	stats := make([]stageStat, len(summaries))
	for i, s := range summaries {
		stats[i] = stageStat{
			ID:     s.StageID.String(),
			Label:  s.Label,
			Accent: s.Accent,
			Count:  s.Count,
			Total:  s.Total,
		}
	}
	count, total := engine.SumSummaries(summaries)
	return stats, count, total
}
