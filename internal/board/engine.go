// Package board implements the deal pipeline board: the deal records, the
// ordered placement of deals across stages, and the move/insert/remove
// operations that keep every deal in exactly one stage at exactly one position.
//
// An Engine is not safe for concurrent use. Callers serialise access.
package board

import (
	"slices"
	"time"

	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// Engine is the board state manager. It owns an ItemStore and a ColumnStore
// and is the only writer of either.
type Engine struct {
	items   *ItemStore
	columns *ColumnStore

	// version increases by one on every successful mutation
	version uint64
}

// Option configures an Engine
type Option func(*Engine)

// WithIDGenerator overrides how new deal IDs are produced
func WithIDGenerator(fn func() types.DealID) Option {
	return func(e *Engine) {
		e.items.newID = fn
	}
}

// WithClock overrides the time source used for deal timestamps
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) {
		e.items.now = fn
	}
}

// New creates an empty board with the given stages in left-to-right order
func New(stages []models.Stage, opts ...Option) (*Engine, error) {
	columns, err := NewColumnStore(stages)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		items:   NewItemStore(),
		columns: columns,
		version: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Version returns the current board version
func (e *Engine) Version() uint64 {
	return e.version
}

// StageOrder returns the configured stage IDs, left to right
func (e *Engine) StageOrder() []types.StageID {
	return e.columns.Order()
}

// Get returns a deal by ID
func (e *Engine) Get(id types.DealID) (models.Deal, error) {
	return e.items.Get(id)
}

// Stage returns the ordered deal IDs of one stage
func (e *Engine) Stage(id types.StageID) ([]types.DealID, error) {
	return e.columns.Get(id)
}

// Locate returns the stage and index a deal currently occupies
func (e *Engine) Locate(id types.DealID) (types.StageID, int, error) {
	if !e.items.Has(id) {
		return "", -1, models.DealNotFound(id)
	}
	stageID, idx, ok := e.columns.Locate(id)
	if !ok {
		return "", -1, models.Invariantf("deal %q has no placement", id)
	}
	return stageID, idx, nil
}

// Relocate moves a deal to destStage at destIndex.
//
// The deal must currently sit at req.SourceIndex in req.SourceStage, otherwise
// the move is rejected as stale and nothing changes. A move to the same stage
// and index is a no-op. For a same-stage reorder the destination index is
// applied to the sequence after the deal has been removed from it.
func (e *Engine) Relocate(req models.MoveRequest) (models.Move, error) {
	src, ok := e.columns.columns[req.SourceStage]
	if !ok {
		return models.Move{}, models.StageNotFound(req.SourceStage)
	}
	dst, ok := e.columns.columns[req.DestStage]
	if !ok {
		return models.Move{}, models.StageNotFound(req.DestStage)
	}
	if !e.items.Has(req.DealID) {
		return models.Move{}, models.DealNotFound(req.DealID)
	}

	if req.ExpectedVersion != 0 && req.ExpectedVersion != e.version {
		return models.Move{}, e.staleMove(req)
	}
	if req.SourceIndex < 0 || req.SourceIndex >= len(src.ids) || src.ids[req.SourceIndex] != req.DealID {
		return models.Move{}, e.staleMove(req)
	}

	if req.SourceStage == req.DestStage && req.SourceIndex == req.DestIndex {
		return models.Move{
			DealID:    req.DealID,
			From:      req.SourceStage,
			To:        req.DestStage,
			FromIndex: req.SourceIndex,
			ToIndex:   req.DestIndex,
			Source:    slices.Clone(src.ids),
			Dest:      slices.Clone(src.ids),
			Version:   e.version,
			NoOp:      true,
		}, nil
	}

	// Everything below is validated and cannot fail, so the removal and
	// insertion land together.
	src.ids = slices.Delete(src.ids, req.SourceIndex, req.SourceIndex+1)
	at := clamp(req.DestIndex, 0, len(dst.ids))
	dst.ids = slices.Insert(dst.ids, at, req.DealID)
	e.columns.where[req.DealID] = req.DestStage
	e.version++

	return models.Move{
		DealID:    req.DealID,
		From:      req.SourceStage,
		To:        req.DestStage,
		FromIndex: req.SourceIndex,
		ToIndex:   at,
		Source:    slices.Clone(src.ids),
		Dest:      slices.Clone(dst.ids),
		Version:   e.version,
	}, nil
}

// staleMove builds the rejection for a relocate whose assertions do not hold
func (e *Engine) staleMove(req models.MoveRequest) error {
	stale := &models.StaleMoveError{
		DealID:          req.DealID,
		AssertedStage:   req.SourceStage,
		AssertedIndex:   req.SourceIndex,
		ActualIndex:     -1,
		ExpectedVersion: req.ExpectedVersion,
		Version:         e.version,
	}
	if stageID, idx, ok := e.columns.Locate(req.DealID); ok {
		stale.ActualStage = stageID
		stale.ActualIndex = idx
	}
	return stale
}

// AddItem creates a deal and appends it to the end of stageID.
// An empty stageID means the first configured stage.
func (e *Engine) AddItem(stageID types.StageID, fields models.DealFields) (models.Deal, error) {
	if stageID.IsZero() {
		stageID = e.columns.First()
	}
	if !e.columns.Has(stageID) {
		return models.Deal{}, models.StageNotFound(stageID)
	}

	deal := e.items.Create(fields)
	if _, err := e.columns.InsertAt(stageID, deal.ID, len(e.columns.columns[stageID].ids)); err != nil {
		// Unreachable: the stage was checked above
		_ = e.items.Delete(deal.ID)
		return models.Deal{}, err
	}
	e.version++
	return deal, nil
}

// RemoveItem deletes a deal and excises it from the stage holding it
func (e *Engine) RemoveItem(id types.DealID) (types.StageID, error) {
	placements := e.columns.occurrences(id)
	if !e.items.Has(id) {
		if len(placements) > 0 {
			return "", models.Invariantf("deal %q is placed in %s but has no record", id, placements[0].StageID)
		}
		return "", models.DealNotFound(id)
	}

	switch len(placements) {
	case 0:
		return "", models.Invariantf("deal %q has no placement", id)
	case 1:
	default:
		return "", models.Invariantf("deal %q is placed %d times", id, len(placements))
	}

	stageID := placements[0].StageID
	if !e.columns.RemoveFrom(stageID, id) {
		return "", models.Invariantf("deal %q vanished from %s", id, stageID)
	}
	if err := e.items.Delete(id); err != nil {
		return "", err
	}
	e.version++
	return stageID, nil
}

// EditItem updates deal fields. Placement is never changed.
func (e *Engine) EditItem(id types.DealID, patch models.DealPatch) (models.Deal, error) {
	deal, err := e.items.Update(id, patch)
	if err != nil {
		return models.Deal{}, err
	}
	e.version++
	return deal, nil
}

// Snapshot returns a deep copy of the whole board
func (e *Engine) Snapshot() models.Board {
	return models.Board{
		Version: e.version,
		Stages:  e.columns.stages(),
		Deals:   e.items.all(),
	}
}

// Restore replaces the board contents with a snapshot taken from this
// engine (or one with the same stages). The stage set must match.
func (e *Engine) Restore(b models.Board) error {
	if len(b.Stages) != len(e.columns.order) {
		return models.Invariantf("snapshot has %d stages, board has %d", len(b.Stages), len(e.columns.order))
	}
	var placements []models.Placement
	for i, st := range b.Stages {
		if st.ID != e.columns.order[i] {
			return models.Invariantf("snapshot stage %d is %q, board has %q", i, st.ID, e.columns.order[i])
		}
		for pos, id := range st.DealIDs {
			placements = append(placements, models.Placement{DealID: id, StageID: st.ID, Position: pos})
		}
	}
	deals := make([]models.Deal, 0, len(b.Deals))
	for _, d := range b.Deals {
		deals = append(deals, d)
	}
	if err := e.load(deals, placements); err != nil {
		return err
	}
	e.version = b.Version
	return nil
}

// Load replaces the board contents with deals and their placements, as read
// from storage, and adopts the stored board version. Placements are ordered
// by Position within each stage. Every deal must be placed exactly once.
// A zero version keeps the current one.
func (e *Engine) Load(deals []models.Deal, placements []models.Placement, version uint64) error {
	if err := e.load(deals, placements); err != nil {
		return err
	}
	if version != 0 {
		e.version = version
	}
	return nil
}

func (e *Engine) load(deals []models.Deal, placements []models.Placement) error {
	known := make(map[types.DealID]bool, len(deals))
	for _, d := range deals {
		if d.ID.IsZero() {
			return models.Invariantf("deal with empty ID")
		}
		if known[d.ID] {
			return models.Invariantf("deal %q listed twice", d.ID)
		}
		known[d.ID] = true
	}

	placed := make(map[types.DealID]bool, len(placements))
	for _, p := range placements {
		if !e.columns.Has(p.StageID) {
			return models.Invariantf("deal %q placed in unknown stage %q", p.DealID, p.StageID)
		}
		if !known[p.DealID] {
			return models.Invariantf("placement for unknown deal %q", p.DealID)
		}
		if placed[p.DealID] {
			return models.Invariantf("deal %q placed more than once", p.DealID)
		}
		placed[p.DealID] = true
	}
	for id := range known {
		if !placed[id] {
			return models.Invariantf("deal %q has no placement", id)
		}
	}

	ordered := slices.Clone(placements)
	slices.SortStableFunc(ordered, func(a, b models.Placement) int {
		return a.Position - b.Position
	})

	e.items.deals = make(map[types.DealID]*models.Deal, len(deals))
	for _, d := range deals {
		e.items.put(d)
	}
	e.columns.reset()
	for _, p := range ordered {
		col := e.columns.columns[p.StageID]
		col.ids = append(col.ids, p.DealID)
		e.columns.where[p.DealID] = p.StageID
	}
	return nil
}

// CheckInvariants verifies that every deal is placed exactly once and that
// every placed ID refers to a stored deal.
func (e *Engine) CheckInvariants() error {
	seen := make(map[types.DealID]types.StageID, e.items.Len())
	for _, stageID := range e.columns.order {
		for pos, id := range e.columns.columns[stageID].ids {
			if !e.items.Has(id) {
				return models.Invariantf("stage %s position %d holds unknown deal %q", stageID, pos, id)
			}
			if prev, dup := seen[id]; dup {
				return models.Invariantf("deal %q placed in both %s and %s", id, prev, stageID)
			}
			seen[id] = stageID
			if e.columns.where[id] != stageID {
				return models.Invariantf("reverse index for deal %q points at %q, deal is in %s", id, e.columns.where[id], stageID)
			}
		}
	}
	if len(seen) != e.items.Len() {
		for id := range e.items.deals {
			if _, ok := seen[id]; !ok {
				return models.Invariantf("deal %q has no placement", id)
			}
		}
	}
	return nil
}
