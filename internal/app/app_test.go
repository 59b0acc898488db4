package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealdesk/internal/database"
	"github.com/thenoetrevino/dealdesk/internal/events"
	"github.com/thenoetrevino/dealdesk/internal/models"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

var testStages = []models.Stage{
	{ID: "lead", Label: "Lead"},
	{ID: "won", Label: "Won"},
}

func TestNew(t *testing.T) {
	app, err := New(context.Background(), database.NewMemStore(), testStages)
	require.NoError(t, err)

	assert.NotNil(t, app.DealService)
	assert.NotNil(t, app.Repo())
	assert.NoError(t, app.Close())
}

func TestNew_InvalidPipeline(t *testing.T) {
	_, err := New(context.Background(), database.NewMemStore(), nil)
	assert.Error(t, err)
}

func TestSubscribe(t *testing.T) {
	t.Run("without publisher", func(t *testing.T) {
		app, err := New(context.Background(), database.NewMemStore(), testStages)
		require.NoError(t, err)

		_, cancel, ok := app.Subscribe(1)
		cancel()
		assert.False(t, ok)
	})

	t.Run("with bus", func(t *testing.T) {
		bus := events.NewBus(8)
		app, err := New(context.Background(), database.NewMemStore(), testStages,
			WithEventPublisher(bus),
			WithBoardOptions(),
		)
		require.NoError(t, err)

		feed, cancel, ok := app.Subscribe(4)
		require.True(t, ok)
		defer cancel()

		deal, err := app.DealService.AddDeal(context.Background(), dealservice.CreateDealRequest{
			Title:   "Website Redesign",
			Company: "Acme Corp",
			Amount:  "8500",
		})
		require.NoError(t, err)

		select {
		case ev := <-feed:
			assert.Equal(t, events.EventDealCreated, ev.Type)
			assert.Equal(t, deal.ID, ev.DealID)
			assert.Equal(t, types.StageID("lead"), ev.StageID)
		case <-time.After(time.Second):
			t.Fatal("no event delivered")
		}

		require.NoError(t, app.Close())
		// Closing the bus ends the subscription
		_, open := <-feed
		assert.False(t, open)
	})
}
