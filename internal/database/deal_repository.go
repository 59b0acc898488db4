package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// DealRepo handles all deal-related database operations.
// Every write that changes placement rewrites the positions of the affected
// stages so stored positions are always 0..n-1.
type DealRepo struct {
	db *sql.DB
}

const dealColumns = `id, title, company, contact, contact_initials, amount, due, owner, created_at, updated_at`

// Version returns the stored board version
func (r *DealRepo) Version(ctx context.Context) (uint64, error) {
	var version uint64
	if err := r.db.QueryRowContext(ctx, `SELECT version FROM board_meta WHERE id = 1`).Scan(&version); err != nil {
		return 0, fmt.Errorf("reading board version: %w", err)
	}
	return version, nil
}

// List returns every deal and its placement, ordered by stage and position
func (r *DealRepo) List(ctx context.Context) ([]models.Deal, []models.Placement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+dealColumns+`, stage_id, position FROM deals ORDER BY stage_id, position`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying deals: %w", err)
	}
	defer rows.Close()

	var deals []models.Deal
	var placements []models.Placement
	for rows.Next() {
		var d models.Deal
		var p models.Placement
		var amount string
		err := rows.Scan(&d.ID, &d.Title, &d.Company, &d.Contact, &d.ContactInitials,
			&amount, &d.Due, &d.Owner, &d.CreatedAt, &d.UpdatedAt, &p.StageID, &p.Position)
		if err != nil {
			return nil, nil, fmt.Errorf("scanning deal: %w", err)
		}
		if d.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, nil, fmt.Errorf("deal %s has invalid amount %q: %w", d.ID, amount, err)
		}
		p.DealID = d.ID
		deals = append(deals, d)
		placements = append(placements, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return deals, placements, nil
}

// Get returns a single deal and its placement
func (r *DealRepo) Get(ctx context.Context, id types.DealID) (*models.Deal, *models.Placement, error) {
	var d models.Deal
	var p models.Placement
	var amount string
	err := r.db.QueryRowContext(ctx,
		`SELECT `+dealColumns+`, stage_id, position FROM deals WHERE id = ?`, id).
		Scan(&d.ID, &d.Title, &d.Company, &d.Contact, &d.ContactInitials,
			&amount, &d.Due, &d.Owner, &d.CreatedAt, &d.UpdatedAt, &p.StageID, &p.Position)
	if err == sql.ErrNoRows {
		return nil, nil, models.DealNotFound(id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("querying deal %s: %w", id, err)
	}
	if d.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, nil, fmt.Errorf("deal %s has invalid amount %q: %w", d.ID, amount, err)
	}
	p.DealID = d.ID
	return &d, &p, nil
}

// Insert stores a new deal in stageID. ids is the stage's full order
// after the insert, including the new deal.
func (r *DealRepo) Insert(ctx context.Context, rev models.Revision, d models.Deal, stageID types.StageID, ids []types.DealID) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := bumpVersion(ctx, tx, rev); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO deals (`+dealColumns+`, stage_id, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.Title, d.Company, d.Contact, d.ContactInitials, d.Amount.String(),
			d.Due, d.Owner, d.CreatedAt, d.UpdatedAt, stageID, len(ids))
		if err != nil {
			return fmt.Errorf("inserting deal %s: %w", d.ID, err)
		}
		return writePositions(ctx, tx, stageID, ids)
	})
}

// Update overwrites the editable fields of a deal. Placement is untouched.
func (r *DealRepo) Update(ctx context.Context, rev models.Revision, d models.Deal) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := bumpVersion(ctx, tx, rev); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
			UPDATE deals SET
				title = ?, company = ?, contact = ?, contact_initials = ?,
				amount = ?, due = ?, owner = ?, updated_at = ?
			WHERE id = ?`,
			d.Title, d.Company, d.Contact, d.ContactInitials,
			d.Amount.String(), d.Due, d.Owner, d.UpdatedAt, d.ID)
		if err != nil {
			return fmt.Errorf("updating deal %s: %w", d.ID, err)
		}
		return expectOneRow(res, d.ID)
	})
}

// Delete removes a deal. ids is the remaining order of the stage it was in.
func (r *DealRepo) Delete(ctx context.Context, rev models.Revision, id types.DealID, stageID types.StageID, ids []types.DealID) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := bumpVersion(ctx, tx, rev); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM deals WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("deleting deal %s: %w", id, err)
		}
		if err := expectOneRow(res, id); err != nil {
			return err
		}
		return writePositions(ctx, tx, stageID, ids)
	})
}

// SavePlacements rewrites the order of a single stage
func (r *DealRepo) SavePlacements(ctx context.Context, rev models.Revision, stageID types.StageID, ids []types.DealID) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := bumpVersion(ctx, tx, rev); err != nil {
			return err
		}
		return writePositions(ctx, tx, stageID, ids)
	})
}

// Move persists a cross-stage move: both stages are rewritten in one transaction
func (r *DealRepo) Move(ctx context.Context, rev models.Revision, dealID types.DealID, src types.StageID, srcIDs []types.DealID, dst types.StageID, dstIDs []types.DealID) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := bumpVersion(ctx, tx, rev); err != nil {
			return err
		}
		if err := writePositions(ctx, tx, src, srcIDs); err != nil {
			return err
		}
		if err := writePositions(ctx, tx, dst, dstIDs); err != nil {
			return fmt.Errorf("moving deal %s: %w", dealID, err)
		}
		return nil
	})
}
