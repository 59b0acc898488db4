// Package deal holds all cli commands related to deals
// e.g., dealdesk deal ...
package deal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealdesk/internal/cli/styles"
	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/money"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// DealCmd returns the deal parent command
func DealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Manage deals",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(EditCmd())
	cmd.AddCommand(RemoveCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}

// addOutputFlags adds the agent-friendly output flags every deal command takes
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// dealOutput is the JSON and human-readable form of a deal
type dealOutput struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Company         string `json:"company"`
	Contact         string `json:"contact"`
	ContactInitials string `json:"contact_initials"`
	Amount          string `json:"amount"`
	Due             string `json:"due"`
	Owner           string `json:"owner,omitempty"`
	Stage           string `json:"stage"`
	StageLabel      string `json:"stage_label"`
	Position        int    `json:"position"`

	amount   decimal.Decimal
	currency string
}

func newDealOutput(d *models.DealDetail, currency string) *dealOutput {
	return &dealOutput{
		ID:              d.ID.String(),
		Title:           d.Title,
		Company:         d.Company,
		Contact:         d.Contact,
		ContactInitials: d.ContactInitials,
		Amount:          d.Amount.String(),
		Due:             d.Due,
		Owner:           d.Owner,
		Stage:           d.StageID.String(),
		StageLabel:      d.StageLabel,
		Position:        d.Position,
		amount:          d.Amount,
		currency:        currency,
	}
}

// GetID returns the deal ID for quiet output
func (o *dealOutput) GetID() string {
	return o.ID
}

// Render implements cli.Renderer
func (o *dealOutput) Render() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(o.Title) + "  " + styles.SubtitleStyle.Render(o.ID) + "\n")
	fmt.Fprintf(&b, "%s %s\n", styles.LabelStyle.Render("Company:"), styles.ValueStyle.Render(o.Company))
	fmt.Fprintf(&b, "%s %s\n", styles.LabelStyle.Render("Value:"), styles.AmountStyle.Render(money.Format(o.amount, o.currency)))
	fmt.Fprintf(&b, "%s %s (%s)\n", styles.LabelStyle.Render("Contact:"), o.Contact, o.ContactInitials)
	fmt.Fprintf(&b, "%s %s\n", styles.LabelStyle.Render("Due:"), o.Due)
	fmt.Fprintf(&b, "%s %s #%d", styles.LabelStyle.Render("Stage:"), o.StageLabel, o.Position+1)
	return styles.RenderCard(b.String())
}

// detail looks up a deal's placement for output
func detail(svc dealservice.Service, id types.DealID, currency string) (*dealOutput, error) {
	d, err := svc.GetDeal(id)
	if err != nil {
		return nil, err
	}
	return newDealOutput(d, currency), nil
}
