package models

import "github.com/thenoetrevino/dealdesk/internal/types"

// Board is a point-in-time copy of the whole pipeline.
// Stages are in configured left-to-right order.
type Board struct {
	Version uint64
	Stages  []Stage
	Deals   map[types.DealID]Deal
}

// Revision is the board version change a storage write commits. Storage
// applies it only while it still holds From.
type Revision struct {
	From uint64
	To   uint64
}

// StageByID returns the stage with the given id, or nil
func (b Board) StageByID(id types.StageID) *Stage {
	for i := range b.Stages {
		if b.Stages[i].ID == id {
			return &b.Stages[i]
		}
	}
	return nil
}

// MoveRequest is a relocate call as supplied by a drag-and-drop surface.
// SourceStage/SourceIndex are where the caller believes the deal currently is.
type MoveRequest struct {
	DealID      types.DealID
	SourceStage types.StageID
	SourceIndex int
	DestStage   types.StageID
	DestIndex   int

	// ExpectedVersion, when non-zero, must equal the board version
	ExpectedVersion uint64
}

// Move is the outcome of a relocate: the affected sequences after the move.
// For a same-stage reorder Source and Dest are the same sequence.
type Move struct {
	DealID    types.DealID
	From      types.StageID
	To        types.StageID
	FromIndex int
	ToIndex   int // Actual index after clamping
	Source    []types.DealID
	Dest      []types.DealID
	Version   uint64
	NoOp      bool
}
