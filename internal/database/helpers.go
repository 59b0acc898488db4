package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// writePositions stores ids as the complete ordered contents of a stage
func writePositions(ctx context.Context, tx *sql.Tx, stageID types.StageID, ids []types.DealID) error {
	stmt, err := tx.PrepareContext(ctx, `UPDATE deals SET stage_id = ?, position = ? WHERE id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for pos, id := range ids {
		res, err := stmt.ExecContext(ctx, stageID, pos, id)
		if err != nil {
			return fmt.Errorf("placing deal %s at %s[%d]: %w", id, stageID, pos, err)
		}
		if err := expectOneRow(res, id); err != nil {
			return err
		}
	}
	return nil
}

// expectOneRow fails with ErrDealNotStored unless exactly one row changed
func expectOneRow(res sql.Result, id types.DealID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("%w: %s", ErrDealNotStored, id)
	}
	return nil
}

// bumpVersion advances the stored board version from rev.From to rev.To.
// It fails with a *VersionConflictError when another writer got there first,
// which rolls back the whole transaction.
func bumpVersion(ctx context.Context, tx *sql.Tx, rev models.Revision) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE board_meta SET version = ? WHERE id = 1 AND version = ?`, rev.To, rev.From)
	if err != nil {
		return fmt.Errorf("updating board version: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var stored uint64
	if err := tx.QueryRowContext(ctx, `SELECT version FROM board_meta WHERE id = 1`).Scan(&stored); err != nil {
		return fmt.Errorf("reading board version: %w", err)
	}
	return &VersionConflictError{Expected: rev.From, Stored: stored}
}
