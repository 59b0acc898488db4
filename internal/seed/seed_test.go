package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealdesk/internal/database"
	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/money"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
)

func newService(t *testing.T, stages []models.Stage) dealservice.Service {
	t.Helper()
	svc, err := dealservice.NewService(context.Background(), database.NewMemStore(), stages, nil)
	require.NoError(t, err)
	return svc
}

func TestLoad(t *testing.T) {
	svc := newService(t, []models.Stage{
		{ID: "new-leads"}, {ID: "qualified"}, {ID: "negotiation"}, {ID: "closed-won"},
	})

	deals, err := Load(context.Background(), svc)
	require.NoError(t, err)
	assert.Len(t, deals, 5)

	var counts []int
	for _, s := range svc.Summaries() {
		counts = append(counts, s.Count)
	}
	assert.Equal(t, []int{2, 1, 1, 1}, counts)

	summaries := svc.Summaries()
	assert.True(t, money.MustParse("20500").Equal(summaries[0].Total))
	assert.True(t, money.MustParse("24000").Equal(summaries[2].Total))

	b := svc.Board()
	first := b.Deals[b.Stages[0].DealIDs[0]]
	assert.Equal(t, "Website Redesign", first.Title)
	assert.Equal(t, "AJ", first.ContactInitials)
}

func TestLoad_NotEmpty(t *testing.T) {
	svc := newService(t, []models.Stage{{ID: "a"}})
	_, err := Load(context.Background(), svc)
	require.NoError(t, err)

	_, err = Load(context.Background(), svc)
	assert.ErrorIs(t, err, ErrBoardNotEmpty)
	assert.Len(t, svc.Board().Deals, 5)
}

func TestLoad_ShortPipeline(t *testing.T) {
	svc := newService(t, []models.Stage{{ID: "open"}, {ID: "closed"}})
	_, err := Load(context.Background(), svc)
	require.NoError(t, err)

	summaries := svc.Summaries()
	assert.Equal(t, 2, summaries[0].Count)
	assert.Equal(t, 3, summaries[1].Count)
}
