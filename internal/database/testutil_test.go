package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
	_ "modernc.org/sqlite"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// Every pooled connection to :memory: would get its own empty database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := runMigrations(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// setupTestDBFile creates a file-based database through InitDB
func setupTestDBFile(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "deals.db")
	db, err := InitDB(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to init test database: %v", err)
	}
	return db, path
}

// ============================================================================
// FIXTURES
// ============================================================================

var testStages = []models.Stage{
	{ID: "lead", Label: "New Leads", Accent: "#3B82F6"},
	{ID: "qualified", Label: "Qualified", Accent: "#A855F7"},
	{ID: "won", Label: "Closed Won", Accent: "#22C55E"},
}

var testTime = time.Date(2025, 8, 28, 9, 30, 0, 0, time.UTC)

func testDeal(id, title, amount string) models.Deal {
	return models.Deal{
		ID:              types.DealID(id),
		Title:           title,
		Company:         "Acme Corp",
		Contact:         "Alex Johnson",
		ContactInitials: "AJ",
		Amount:          decimal.RequireFromString(amount),
		Due:             "Aug 28",
		CreatedAt:       testTime,
		UpdatedAt:       testTime,
	}
}

func ids(s ...string) []types.DealID {
	out := make([]types.DealID, len(s))
	for i, v := range s {
		out[i] = types.DealID(v)
	}
	return out
}
