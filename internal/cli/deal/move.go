package deal

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealdesk/internal/cli/handler"
	"github.com/thenoetrevino/dealdesk/internal/models"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// MoveCmd returns the deal move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move [id] [next|prev|up|down]",
		Short: "Move a deal within or across stages",
		Long: `Move a deal to an exact position, or one step in a direction.

An exact move names where you saw the deal (--from, --from-index) and where it
should go (--to, --to-index). If the deal is no longer where you saw it the move
is rejected as stale and nothing changes. Positions are zero-based; a --to-index
past the end of the stage puts the deal last.

Examples:
  # Drag the top deal of New Leads to the second slot of Qualified
  dealdesk deal move --id 3f2a... --from new-leads --from-index 0 --to qualified --to-index 1

  # Also reject the move if anything changed since board version 12
  dealdesk deal move --id 3f2a... --from new-leads --from-index 0 --to qualified --to-index 1 --version 12

  # Step moves
  dealdesk deal move 3f2a... next
  dealdesk deal move --id 3f2a... up
`,
		Args: cobra.MaximumNArgs(2),
		RunE: handler.Command(handler.HandlerFunc(runMove)),
	}

	cmd.Flags().String("id", "", "Deal ID (can also be provided as positional argument)")
	cmd.Flags().String("from", "", "Stage the deal is in now")
	cmd.Flags().Int("from-index", 0, "Position the deal is at now")
	cmd.Flags().String("to", "", "Destination stage")
	cmd.Flags().Int("to-index", 0, "Destination position")
	cmd.Flags().Uint64("version", 0, "Board version the move was planned against (0 skips the check)")

	addOutputFlags(cmd)
	return cmd
}

// moveOutput is the result of a move
type moveOutput struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	FromIndex int    `json:"from_index"`
	To        string `json:"to"`
	ToIndex   int    `json:"to_index"`
	Version   uint64 `json:"version"`
	NoOp      bool   `json:"no_op"`
}

// GetID returns the deal ID for quiet output
func (o *moveOutput) GetID() string {
	return o.ID
}

// Render implements cli.Renderer
func (o *moveOutput) Render() string {
	if o.NoOp {
		return fmt.Sprintf("Deal %s already at %s #%d", o.ID, o.To, o.ToIndex+1)
	}
	return fmt.Sprintf("Moved deal %s: %s #%d -> %s #%d (board version %d)",
		o.ID, o.From, o.FromIndex+1, o.To, o.ToIndex+1, o.Version)
}

func newMoveOutput(m *models.Move) *moveOutput {
	return &moveOutput{
		ID:        m.DealID.String(),
		From:      m.From.String(),
		FromIndex: m.FromIndex,
		To:        m.To.String(),
		ToIndex:   m.ToIndex,
		Version:   m.Version,
		NoOp:      m.NoOp,
	}
}

func runMove(ctx context.Context, args *handler.Arguments) (any, error) {
	id, direction, err := parseMoveArgs(args)
	if err != nil {
		return nil, err
	}

	svc := args.CLI.App.DealService

	var move *models.Move
	switch direction {
	case "next":
		move, err = svc.MoveDealToNextStage(ctx, id)
	case "prev":
		move, err = svc.MoveDealToPrevStage(ctx, id)
	case "up":
		move, err = svc.MoveDealUp(ctx, id)
	case "down":
		move, err = svc.MoveDealDown(ctx, id)
	case "":
		move, err = moveExact(ctx, svc, id, args)
	default:
		return nil, fmt.Errorf("%w: unknown direction %q (must be: next, prev, up, down)", dealservice.ErrInvalidDirection, direction)
	}
	if err != nil {
		return nil, err
	}

	return newMoveOutput(move), nil
}

func moveExact(ctx context.Context, svc dealservice.Service, id types.DealID, args *handler.Arguments) (*models.Move, error) {
	from, err := args.ParseStage("from")
	if err != nil {
		return nil, err
	}
	to, err := args.ParseStage("to")
	if err != nil {
		return nil, err
	}
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: --from and --to are required without a direction", dealservice.ErrInvalidDirection)
	}

	return svc.MoveDeal(ctx, dealservice.MoveDealRequest{
		DealID:          id,
		FromStage:       from,
		FromIndex:       args.GetInt("from-index", 0),
		ToStage:         to,
		ToIndex:         args.GetInt("to-index", 0),
		ExpectedVersion: args.GetUint64("version", 0),
	})
}

// parseMoveArgs accepts "[id] [direction]" with the ID optionally given by --id
func parseMoveArgs(args *handler.Arguments) (types.DealID, string, error) {
	positional := args.Args
	if args.Has("id") && len(positional) == 2 {
		return "", "", fmt.Errorf("%w: deal ID given twice", dealservice.ErrInvalidDealID)
	}
	if !args.Has("id") && len(positional) > 0 {
		args.Flags["id"] = positional[0]
		positional = positional[1:]
	}

	direction := ""
	if len(positional) > 0 {
		direction = strings.ToLower(strings.TrimSpace(positional[0]))
	}

	// Positional parsing is done; ParseDealID reads --id
	args.Args = nil
	id, err := args.ParseDealID()
	if err != nil {
		return "", "", err
	}
	return id, direction, nil
}
