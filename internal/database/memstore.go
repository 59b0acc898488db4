package database

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

type memRow struct {
	deal     models.Deal
	stage    types.StageID
	position int
}

// MemStore is an in-memory DataStore with the same placement semantics as
// Repository. It backs tests and ephemeral boards.
type MemStore struct {
	mu      sync.Mutex
	stages  []models.Stage
	deals   map[types.DealID]memRow
	version uint64
}

// NewMemStore creates an empty in-memory store at board version 1
func NewMemStore() *MemStore {
	return &MemStore{deals: make(map[types.DealID]memRow), version: 1}
}

func (m *MemStore) BoardVersion(_ context.Context) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version, nil
}

func (m *MemStore) ListStages(_ context.Context) ([]models.Stage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.stages), nil
}

func (m *MemStore) SyncStages(_ context.Context, stages []models.Stage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	configured := make(map[types.StageID]bool, len(stages))
	for _, s := range stages {
		configured[s.ID] = true
	}
	for _, row := range m.deals {
		if !configured[row.stage] {
			return fmt.Errorf("%w: %s", ErrStageInUse, row.stage)
		}
	}

	m.stages = make([]models.Stage, 0, len(stages))
	for _, s := range stages {
		m.stages = append(m.stages, models.Stage{ID: s.ID, Label: s.Label, Accent: s.Accent})
	}
	return nil
}

func (m *MemStore) ListDeals(_ context.Context) ([]models.Deal, []models.Placement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := make([]memRow, 0, len(m.deals))
	for _, row := range m.deals {
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b memRow) int {
		if a.stage != b.stage {
			if a.stage < b.stage {
				return -1
			}
			return 1
		}
		return a.position - b.position
	})

	deals := make([]models.Deal, 0, len(rows))
	placements := make([]models.Placement, 0, len(rows))
	for _, row := range rows {
		deals = append(deals, row.deal)
		placements = append(placements, models.Placement{DealID: row.deal.ID, StageID: row.stage, Position: row.position})
	}
	return deals, placements, nil
}

func (m *MemStore) GetDeal(_ context.Context, id types.DealID) (*models.Deal, *models.Placement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.deals[id]
	if !ok {
		return nil, nil, models.DealNotFound(id)
	}
	d := row.deal
	return &d, &models.Placement{DealID: id, StageID: row.stage, Position: row.position}, nil
}

func (m *MemStore) InsertDeal(_ context.Context, rev models.Revision, d models.Deal, stageID types.StageID, ids []types.DealID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkVersion(rev); err != nil {
		return err
	}

	if !m.hasStage(stageID) {
		return fmt.Errorf("%w: %s", ErrUnknownStage, stageID)
	}
	if _, dup := m.deals[d.ID]; dup {
		return fmt.Errorf("inserting deal %s: already stored", d.ID)
	}
	m.deals[d.ID] = memRow{deal: d, stage: stageID, position: len(ids)}
	if err := m.writePositions(stageID, ids); err != nil {
		delete(m.deals, d.ID)
		return err
	}
	m.version = rev.To
	return nil
}

func (m *MemStore) UpdateDeal(_ context.Context, rev models.Revision, d models.Deal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkVersion(rev); err != nil {
		return err
	}
	row, ok := m.deals[d.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDealNotStored, d.ID)
	}
	row.deal = d
	m.deals[d.ID] = row
	m.version = rev.To
	return nil
}

func (m *MemStore) DeleteDeal(_ context.Context, rev models.Revision, id types.DealID, stageID types.StageID, ids []types.DealID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkVersion(rev); err != nil {
		return err
	}
	row, ok := m.deals[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDealNotStored, id)
	}
	delete(m.deals, id)
	if err := m.writePositions(stageID, ids); err != nil {
		m.deals[id] = row
		return err
	}
	m.version = rev.To
	return nil
}

func (m *MemStore) SaveStageOrder(_ context.Context, rev models.Revision, stageID types.StageID, ids []types.DealID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkVersion(rev); err != nil {
		return err
	}
	if err := m.writePositions(stageID, ids); err != nil {
		return err
	}
	m.version = rev.To
	return nil
}

func (m *MemStore) MoveDeal(_ context.Context, rev models.Revision, _ types.DealID, src types.StageID, srcIDs []types.DealID, dst types.StageID, dstIDs []types.DealID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkVersion(rev); err != nil {
		return err
	}
	if err := m.checkPositions(src, srcIDs); err != nil {
		return err
	}
	if err := m.checkPositions(dst, dstIDs); err != nil {
		return err
	}
	m.setPositions(src, srcIDs)
	m.setPositions(dst, dstIDs)
	m.version = rev.To
	return nil
}

// checkVersion fails unless the store still holds rev.From
func (m *MemStore) checkVersion(rev models.Revision) error {
	if m.version != rev.From {
		return &VersionConflictError{Expected: rev.From, Stored: m.version}
	}
	return nil
}

func (m *MemStore) hasStage(id types.StageID) bool {
	return slices.ContainsFunc(m.stages, func(s models.Stage) bool { return s.ID == id })
}

// writePositions validates every id before changing anything, so a failed
// write leaves the store as it was.
func (m *MemStore) writePositions(stageID types.StageID, ids []types.DealID) error {
	if err := m.checkPositions(stageID, ids); err != nil {
		return err
	}
	m.setPositions(stageID, ids)
	return nil
}

func (m *MemStore) checkPositions(stageID types.StageID, ids []types.DealID) error {
	if !m.hasStage(stageID) {
		return fmt.Errorf("%w: %s", ErrUnknownStage, stageID)
	}
	for _, id := range ids {
		if _, ok := m.deals[id]; !ok {
			return fmt.Errorf("%w: %s", ErrDealNotStored, id)
		}
	}
	return nil
}

func (m *MemStore) setPositions(stageID types.StageID, ids []types.DealID) {
	for pos, id := range ids {
		row := m.deals[id]
		row.stage = stageID
		row.position = pos
		m.deals[id] = row
	}
}
