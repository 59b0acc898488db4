package handler

import (
	"fmt"
	"strings"

	"github.com/thenoetrevino/dealdesk/internal/cli"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// ErrMissingDealID indicates neither a positional ID nor --id was given
var ErrMissingDealID = fmt.Errorf("%w: pass the deal ID as an argument or with --id", dealservice.ErrInvalidDealID)

// ParseDealID extracts the deal ID from the first positional argument or --id
func (a *Arguments) ParseDealID() (types.DealID, error) {
	id := a.GetString("id", "")
	if len(a.Args) > 0 {
		id = a.Args[0]
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingDealID
	}
	return types.DealID(id), nil
}

// ParseStage resolves a stage flag by ID or label. An unset flag gives the
// empty StageID.
func (a *Arguments) ParseStage(flagName string) (types.StageID, error) {
	return cli.ResolveStage(a.CLI.Config.Stages(), a.GetString(flagName, ""))
}
