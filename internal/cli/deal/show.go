package deal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealdesk/internal/cli/handler"
	"github.com/thenoetrevino/dealdesk/internal/money"
)

// cardWidth is the word-wrap width of the rendered deal card
const cardWidth = 72

// ShowCmd returns the deal show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show deal details",
		Long:  "Display a deal card with its value, contact, due marker and place on the board.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(handler.HandlerFunc(runShow)),
	}

	cmd.Flags().String("id", "", "Deal ID (can also be provided as positional argument)")

	addOutputFlags(cmd)
	return cmd
}

// showOutput renders the deal as a markdown card
type showOutput struct {
	*dealOutput
}

// Render implements cli.Renderer
func (o showOutput) Render() string {
	md := o.markdown()

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(cardWidth),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func (o showOutput) markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", o.Title)
	fmt.Fprintf(&b, "**%s** · %s\n\n", o.Company, money.Format(o.amount, o.currency))
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Contact | %s (%s) |\n", o.Contact, o.ContactInitials)
	fmt.Fprintf(&b, "| Due | %s |\n", o.Due)
	fmt.Fprintf(&b, "| Stage | %s, position %d |\n", o.StageLabel, o.Position+1)
	if o.Owner != "" {
		fmt.Fprintf(&b, "| Owner | %s |\n", o.Owner)
	}
	fmt.Fprintf(&b, "\n`%s`\n", o.ID)
	return b.String()
}

func runShow(ctx context.Context, args *handler.Arguments) (any, error) {
	id, err := args.ParseDealID()
	if err != nil {
		return nil, err
	}

	out, err := detail(args.CLI.App.DealService, id, args.CLI.Currency())
	if err != nil {
		return nil, err
	}
	return showOutput{out}, nil
}
