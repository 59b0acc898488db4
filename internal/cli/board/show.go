package board

import (
	"context"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	engine "github.com/thenoetrevino/dealdesk/internal/board"
	"github.com/thenoetrevino/dealdesk/internal/cli/handler"
	"github.com/thenoetrevino/dealdesk/internal/cli/styles"
	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/money"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the pipeline as columns of deal cards",
		Long: `Show every stage left to right with its deals top to bottom.

The JSON form lists deal IDs with their positions and the board version,
which is what 'dealdesk deal move' needs.`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runShow)),
	}

	addOutputFlags(cmd)
	return cmd
}

// cardOutput is a deal as shown on the board
type cardOutput struct {
	ID              string          `json:"id"`
	Position        int             `json:"position"`
	Title           string          `json:"title"`
	Company         string          `json:"company"`
	Amount          decimal.Decimal `json:"amount"`
	ContactInitials string          `json:"contact_initials"`
	Due             string          `json:"due"`
}

type columnOutput struct {
	stageStat
	Deals []cardOutput `json:"deals"`
}

// boardOutput is the JSON and human-readable form of the pipeline
type boardOutput struct {
	Version uint64          `json:"version"`
	Stages  []columnOutput  `json:"stages"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`

	currency string
}

func newBoardOutput(b models.Board, currency string) *boardOutput {
	stats, count, total := newStageStats(engine.Summarize(b))

	out := &boardOutput{
		Version:  b.Version,
		Stages:   make([]columnOutput, len(b.Stages)),
		Count:    count,
		Total:    total,
		currency: currency,
	}
	for i, st := range b.Stages {
		col := columnOutput{stageStat: stats[i], Deals: make([]cardOutput, 0, len(st.DealIDs))}
		for pos, id := range st.DealIDs {
			d := b.Deals[id]
			col.Deals = append(col.Deals, cardOutput{
				ID:              id.String(),
				Position:        pos,
				Title:           d.Title,
				Company:         d.Company,
				Amount:          d.Amount,
				ContactInitials: d.ContactInitials,
				Due:             d.Due,
			})
		}
		out.Stages[i] = col
	}
	return out
}

// Render implements cli.Renderer
func (o *boardOutput) Render() string {
	columns := make([]string, len(o.Stages))
	for i, col := range o.Stages {
		columns[i] = o.renderColumn(col)
	}

	footer := fmt.Sprintf("%d deals · %s · version %d",
		o.Count, styles.AmountStyle.Render(money.Format(o.Total, o.currency)), o.Version)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		styles.SubtitleStyle.Render(footer),
	)
}

func (o *boardOutput) renderColumn(col columnOutput) string {
	var b strings.Builder
	b.WriteString(styles.StageMarker(col.Accent) + " " + styles.ColumnHeaderStyle.Render(col.Label))
	fmt.Fprintf(&b, " %s\n", styles.SubtitleStyle.Render(fmt.Sprintf("(%d)", col.Count)))
	b.WriteString(styles.AmountStyle.Render(money.Format(col.Total, o.currency)))

	for _, card := range col.Deals {
		content := styles.TitleStyle.Render(card.Title) + "\n" +
			styles.SubtitleStyle.Render(card.Company) + "\n" +
			styles.AmountStyle.Render(money.Format(card.Amount, o.currency)) + "  " +
			styles.ValueStyle.Render(card.ContactInitials+" · "+card.Due) + "\n" +
			styles.SubtitleStyle.Render(card.ID)
		b.WriteString("\n" + styles.RenderCard(content))
	}
	if len(col.Deals) == 0 {
		b.WriteString("\n" + styles.SubtitleStyle.Render("No deals"))
	}

	return styles.ColumnStyle.Render(b.String())
}

func runShow(_ context.Context, args *handler.Arguments) (any, error) {
	b := args.CLI.App.DealService.Board()
	return newBoardOutput(b, args.CLI.Currency()), nil
}
