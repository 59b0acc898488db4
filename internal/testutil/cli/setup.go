package cli

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/thenoetrevino/dealdesk/internal/app"
	"github.com/thenoetrevino/dealdesk/internal/board"
	"github.com/thenoetrevino/dealdesk/internal/config"
	"github.com/thenoetrevino/dealdesk/internal/database"
	"github.com/thenoetrevino/dealdesk/internal/models"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
	"github.com/thenoetrevino/dealdesk/internal/testutil"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance.
// The board uses the default pipeline and deal IDs "deal-1", "deal-2", ...
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil.
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	return db, NewTestApp(t, db)
}

// NewTestApp starts an App over db. Calling it again on the same db
// reloads the board from storage, like a second CLI invocation. The ID
// sequence restarts, so a second App must not add deals.
func NewTestApp(t *testing.T, db *sql.DB) *app.App {
	t.Helper()

	var n int
	nextID := func() types.DealID {
		n++
		return types.DealID(fmt.Sprintf("deal-%d", n))
	}

	// Note: EventPublisher is nil - event publishing is tested elsewhere
	appInstance, err := app.New(context.Background(), database.NewRepository(db), TestStages(),
		app.WithBoardOptions(board.WithIDGenerator(nextID)),
	)
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	return appInstance
}

// TestStages returns the default pipeline as board stages
func TestStages() []models.Stage {
	return config.Default().Stages()
}

// CreateTestDeal adds a deal through the service and returns its ID
func CreateTestDeal(t *testing.T, a *app.App, stage types.StageID, title, amount string) types.DealID {
	t.Helper()

	d, err := a.DealService.AddDeal(context.Background(), dealservice.CreateDealRequest{
		Title:   title,
		Company: "Test Co",
		Amount:  amount,
		StageID: stage,
	})
	if err != nil {
		t.Fatalf("Failed to create test deal: %v", err)
	}
	return d.ID
}
