package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// StageRepo handles all stage-related database operations.
type StageRepo struct {
	db *sql.DB
}

// List returns the stored stages in board order, without deal IDs
func (r *StageRepo) List(ctx context.Context) ([]models.Stage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, label, accent FROM stages ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("querying stages: %w", err)
	}
	defer rows.Close()

	var stages []models.Stage
	for rows.Next() {
		var s models.Stage
		if err := rows.Scan(&s.ID, &s.Label, &s.Accent); err != nil {
			return nil, fmt.Errorf("scanning stage: %w", err)
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

// Sync makes the stages table match the configured pipeline.
// Configured stages are upserted in order. Stored stages that are no longer
// configured are removed, unless deals still sit in them.
func (r *StageRepo) Sync(ctx context.Context, stages []models.Stage) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		configured := make(map[types.StageID]bool, len(stages))
		for i, s := range stages {
			configured[s.ID] = true
			_, err := tx.ExecContext(ctx, `
				INSERT INTO stages (id, label, accent, sort_order) VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					label = excluded.label,
					accent = excluded.accent,
					sort_order = excluded.sort_order`,
				s.ID, s.Label, s.Accent, i)
			if err != nil {
				return fmt.Errorf("upserting stage %s: %w", s.ID, err)
			}
		}

		usage, err := stageUsage(ctx, tx)
		if err != nil {
			return err
		}
		var stale []types.StageID
		for _, u := range usage {
			if configured[u.id] {
				continue
			}
			if u.deals > 0 {
				return fmt.Errorf("%w: %s has %d deals", ErrStageInUse, u.id, u.deals)
			}
			stale = append(stale, u.id)
		}

		for _, id := range stale {
			if _, err := tx.ExecContext(ctx, `DELETE FROM stages WHERE id = ?`, id); err != nil {
				return fmt.Errorf("removing stage %s: %w", id, err)
			}
		}
		return nil
	})
}

type stageCount struct {
	id    types.StageID
	deals int
}

// stageUsage counts the deals in every stored stage
func stageUsage(ctx context.Context, tx *sql.Tx) ([]stageCount, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT s.id, COUNT(d.id)
		FROM stages s LEFT JOIN deals d ON d.stage_id = s.id
		GROUP BY s.id
		ORDER BY s.sort_order`)
	if err != nil {
		return nil, fmt.Errorf("querying stage usage: %w", err)
	}
	defer rows.Close()

	var usage []stageCount
	for rows.Next() {
		var u stageCount
		if err := rows.Scan(&u.id, &u.deals); err != nil {
			return nil, fmt.Errorf("scanning stage usage: %w", err)
		}
		usage = append(usage, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading stage usage: %w", err)
	}
	return usage, nil
}
