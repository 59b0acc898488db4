package board

import (
	"slices"

	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// column is one stage's metadata plus its ordered deal sequence
type column struct {
	label  string
	accent string
	ids    []types.DealID
}

// ColumnStore owns the ordered deal sequence of every configured stage.
// The set and order of stages is fixed at construction.
type ColumnStore struct {
	order   []types.StageID
	columns map[types.StageID]*column

	// where is a reverse index from deal to stage, kept in step with ids
	where map[types.DealID]types.StageID
}

// NewColumnStore creates a store for the given stages, in display order.
// Stage IDs must be non-empty and unique.
func NewColumnStore(stages []models.Stage) (*ColumnStore, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}

	s := &ColumnStore{
		order:   make([]types.StageID, 0, len(stages)),
		columns: make(map[types.StageID]*column, len(stages)),
		where:   make(map[types.DealID]types.StageID),
	}
	for _, st := range stages {
		if st.ID.IsZero() {
			return nil, ErrEmptyStageID
		}
		if _, dup := s.columns[st.ID]; dup {
			return nil, &DuplicateStageError{ID: st.ID}
		}
		s.order = append(s.order, st.ID)
		s.columns[st.ID] = &column{label: st.Label, accent: st.Accent}
	}
	return s, nil
}

// Get returns a copy of the stage's ordered deal IDs
func (s *ColumnStore) Get(stageID types.StageID) ([]types.DealID, error) {
	col, ok := s.columns[stageID]
	if !ok {
		return nil, models.StageNotFound(stageID)
	}
	return slices.Clone(col.ids), nil
}

// InsertAt places dealID at index in the stage, clamping index to [0, len].
// The caller guarantees dealID is not already placed in any stage.
func (s *ColumnStore) InsertAt(stageID types.StageID, dealID types.DealID, index int) (int, error) {
	col, ok := s.columns[stageID]
	if !ok {
		return 0, models.StageNotFound(stageID)
	}
	index = clamp(index, 0, len(col.ids))
	col.ids = slices.Insert(col.ids, index, dealID)
	s.where[dealID] = stageID
	return index, nil
}

// RemoveFrom removes the first occurrence of dealID from the stage.
// It reports whether anything was removed.
func (s *ColumnStore) RemoveFrom(stageID types.StageID, dealID types.DealID) bool {
	col, ok := s.columns[stageID]
	if !ok {
		return false
	}
	idx := slices.Index(col.ids, dealID)
	if idx < 0 {
		return false
	}
	col.ids = slices.Delete(col.ids, idx, idx+1)
	if s.where[dealID] == stageID {
		delete(s.where, dealID)
	}
	return true
}

// Locate returns the stage and position of a deal using the reverse index
func (s *ColumnStore) Locate(dealID types.DealID) (types.StageID, int, bool) {
	stageID, ok := s.where[dealID]
	if !ok {
		return "", -1, false
	}
	idx := slices.Index(s.columns[stageID].ids, dealID)
	if idx < 0 {
		return "", -1, false
	}
	return stageID, idx, true
}

// occurrences scans every stage and returns each placement of dealID.
// More than one result means the partition is broken.
func (s *ColumnStore) occurrences(dealID types.DealID) []models.Placement {
	var found []models.Placement
	for _, id := range s.order {
		for pos, d := range s.columns[id].ids {
			if d == dealID {
				found = append(found, models.Placement{DealID: d, StageID: id, Position: pos})
			}
		}
	}
	return found
}

// Has reports whether the stage is configured
func (s *ColumnStore) Has(stageID types.StageID) bool {
	_, ok := s.columns[stageID]
	return ok
}

// Order returns the configured stage order
func (s *ColumnStore) Order() []types.StageID {
	return slices.Clone(s.order)
}

// First returns the leftmost stage
func (s *ColumnStore) First() types.StageID {
	return s.order[0]
}

// stages returns deep copies of every stage in display order
func (s *ColumnStore) stages() []models.Stage {
	out := make([]models.Stage, 0, len(s.order))
	for _, id := range s.order {
		col := s.columns[id]
		out = append(out, models.Stage{
			ID:      id,
			Label:   col.label,
			Accent:  col.accent,
			DealIDs: slices.Clone(col.ids),
		})
	}
	return out
}

// reset empties every stage sequence, keeping the stage metadata
func (s *ColumnStore) reset() {
	for _, col := range s.columns {
		col.ids = nil
	}
	clear(s.where)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
