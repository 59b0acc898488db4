// Package database defines repository interfaces for data access
package database

import (
	"context"

	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// StageRepository defines stage persistence
type StageRepository interface {
	ListStages(ctx context.Context) ([]models.Stage, error)
	SyncStages(ctx context.Context, stages []models.Stage) error
}

// DealRepository defines deal and placement persistence.
// Methods that change placement take the affected stage's full order.
// Every write commits a board Revision together with the change and fails
// with a *VersionConflictError when storage no longer holds rev.From.
type DealRepository interface {
	BoardVersion(ctx context.Context) (uint64, error)
	ListDeals(ctx context.Context) ([]models.Deal, []models.Placement, error)
	GetDeal(ctx context.Context, id types.DealID) (*models.Deal, *models.Placement, error)
	InsertDeal(ctx context.Context, rev models.Revision, d models.Deal, stageID types.StageID, ids []types.DealID) error
	UpdateDeal(ctx context.Context, rev models.Revision, d models.Deal) error
	DeleteDeal(ctx context.Context, rev models.Revision, id types.DealID, stageID types.StageID, ids []types.DealID) error
	SaveStageOrder(ctx context.Context, rev models.Revision, stageID types.StageID, ids []types.DealID) error
	MoveDeal(ctx context.Context, rev models.Revision, dealID types.DealID, src types.StageID, srcIDs []types.DealID, dst types.StageID, dstIDs []types.DealID) error
}
