package database

import (
	"context"
	"database/sql"

	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*StageRepo
	*DealRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StageRepo: &StageRepo{db: db},
		DealRepo:  &DealRepo{db: db},
	}
}

// Wrapper methods for StageRepo
func (r *Repository) ListStages(ctx context.Context) ([]models.Stage, error) {
	return r.StageRepo.List(ctx)
}

func (r *Repository) SyncStages(ctx context.Context, stages []models.Stage) error {
	return r.StageRepo.Sync(ctx, stages)
}

// Wrapper methods for DealRepo
func (r *Repository) BoardVersion(ctx context.Context) (uint64, error) {
	return r.DealRepo.Version(ctx)
}

func (r *Repository) ListDeals(ctx context.Context) ([]models.Deal, []models.Placement, error) {
	return r.DealRepo.List(ctx)
}

func (r *Repository) GetDeal(ctx context.Context, id types.DealID) (*models.Deal, *models.Placement, error) {
	return r.DealRepo.Get(ctx, id)
}

func (r *Repository) InsertDeal(ctx context.Context, rev models.Revision, d models.Deal, stageID types.StageID, ids []types.DealID) error {
	return r.DealRepo.Insert(ctx, rev, d, stageID, ids)
}

func (r *Repository) UpdateDeal(ctx context.Context, rev models.Revision, d models.Deal) error {
	return r.DealRepo.Update(ctx, rev, d)
}

func (r *Repository) DeleteDeal(ctx context.Context, rev models.Revision, id types.DealID, stageID types.StageID, ids []types.DealID) error {
	return r.DealRepo.Delete(ctx, rev, id, stageID, ids)
}

func (r *Repository) SaveStageOrder(ctx context.Context, rev models.Revision, stageID types.StageID, ids []types.DealID) error {
	return r.DealRepo.SavePlacements(ctx, rev, stageID, ids)
}

func (r *Repository) MoveDeal(ctx context.Context, rev models.Revision, dealID types.DealID, src types.StageID, srcIDs []types.DealID, dst types.StageID, dstIDs []types.DealID) error {
	return r.DealRepo.Move(ctx, rev, dealID, src, srcIDs, dst, dstIDs)
}
