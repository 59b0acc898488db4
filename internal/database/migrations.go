package database

import (
	"context"
	"database/sql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS stages (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		accent TEXT NOT NULL DEFAULT '',
		sort_order INTEGER NOT NULL
	)`,

	// amount is TEXT so values round-trip as exact decimals
	`CREATE TABLE IF NOT EXISTS deals (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		company TEXT NOT NULL DEFAULT '',
		contact TEXT NOT NULL DEFAULT '',
		contact_initials TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL DEFAULT '0',
		due TEXT NOT NULL DEFAULT '',
		owner TEXT NOT NULL DEFAULT '',
		stage_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (stage_id) REFERENCES stages(id) ON DELETE RESTRICT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_deals_stage
		ON deals(stage_id, position)`,

	// Single row holding the board version shared by every process
	`CREATE TABLE IF NOT EXISTS board_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		version INTEGER NOT NULL
	)`,

	`INSERT OR IGNORE INTO board_meta (id, version) VALUES (1, 1)`,
}

// runMigrations creates the database schema
func runMigrations(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
