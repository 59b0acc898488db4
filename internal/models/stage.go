package models

import (
	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// Stage represents a pipeline stage (a board column) such as "New Leads" or "Closed Won".
// DealIDs is the ordered, top-to-bottom sequence of deals placed in the stage.
type Stage struct {
	ID      types.StageID
	Label   string
	Accent  string // Hex color used for the stage marker
	DealIDs []types.DealID
}

// StageSummary is the derived per-stage statistic shown above the board
type StageSummary struct {
	StageID types.StageID
	Label   string
	Accent  string
	Count   int
	Total   decimal.Decimal
}

// Placement records where a deal sits: which stage and at which position.
// It is the persisted form of the stage sequences.
type Placement struct {
	DealID   types.DealID
	StageID  types.StageID
	Position int
}
