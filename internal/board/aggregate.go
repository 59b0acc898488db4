package board

import (
	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/dealdesk/internal/models"
)

// Summaries returns the count and total value of each stage, in board order.
// It is recomputed from the stores on every call.
func (e *Engine) Summaries() []models.StageSummary {
	out := make([]models.StageSummary, 0, len(e.columns.order))
	for _, stageID := range e.columns.order {
		col := e.columns.columns[stageID]
		total := decimal.Zero
		for _, id := range col.ids {
			if d, ok := e.items.deals[id]; ok {
				total = total.Add(d.Amount)
			}
		}
		out = append(out, models.StageSummary{
			StageID: stageID,
			Label:   col.label,
			Accent:  col.accent,
			Count:   len(col.ids),
			Total:   total,
		})
	}
	return out
}

// Totals returns the number of placed deals and their combined value
func (e *Engine) Totals() (int, decimal.Decimal) {
	return SumSummaries(e.Summaries())
}

// Summarize computes stage summaries from a board snapshot
func Summarize(b models.Board) []models.StageSummary {
	out := make([]models.StageSummary, 0, len(b.Stages))
	for _, st := range b.Stages {
		total := decimal.Zero
		for _, id := range st.DealIDs {
			if d, ok := b.Deals[id]; ok {
				total = total.Add(d.Amount)
			}
		}
		out = append(out, models.StageSummary{
			StageID: st.ID,
			Label:   st.Label,
			Accent:  st.Accent,
			Count:   len(st.DealIDs),
			Total:   total,
		})
	}
	return out
}

// SumSummaries adds up per-stage counts and totals
func SumSummaries(summaries []models.StageSummary) (int, decimal.Decimal) {
	count := 0
	total := decimal.Zero
	for _, s := range summaries {
		count += s.Count
		total = total.Add(s.Total)
	}
	return count, total
}
