package board

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

var testStages = []models.Stage{
	{ID: "A", Label: "New Leads", Accent: "#3B82F6"},
	{ID: "B", Label: "Qualified", Accent: "#A855F7"},
	{ID: "C", Label: "Closed Won", Accent: "#22C55E"},
}

var fixedNow = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

// newTestEngine creates an engine with three stages and deterministic deal IDs
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	n := 0
	e, err := New(testStages,
		WithIDGenerator(func() types.DealID {
			n++
			return types.DealID(fmt.Sprintf("deal-%d", n))
		}),
		WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	return e
}

// addDeals appends one deal per title to the stage and returns their IDs
func addDeals(t *testing.T, e *Engine, stage types.StageID, titles ...string) []types.DealID {
	t.Helper()
	ids := make([]types.DealID, 0, len(titles))
	for _, title := range titles {
		d, err := e.AddItem(stage, models.DealFields{Title: title, Amount: decimal.NewFromInt(100)})
		require.NoError(t, err)
		ids = append(ids, d.ID)
	}
	return ids
}

// requireStage asserts the exact ordered contents of a stage
func requireStage(t *testing.T, e *Engine, stage types.StageID, want ...types.DealID) {
	t.Helper()
	got, err := e.Stage(stage)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("stage %s mismatch (-want +got):\n%s", stage, diff)
	}
}

// requireSameBoard fails if two snapshots differ
func requireSameBoard(t *testing.T, want, got models.Board) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("board mismatch (-want +got):\n%s", diff)
	}
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
