package tui

import (
	"context"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealdesk/internal/board"
	"github.com/thenoetrevino/dealdesk/internal/config"
	"github.com/thenoetrevino/dealdesk/internal/database"
	"github.com/thenoetrevino/dealdesk/internal/events"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
	"github.com/thenoetrevino/dealdesk/internal/tui/state"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// setupTestModel builds a model over an in-memory store with the given
// titles placed in the first stage
func setupTestModel(t *testing.T, titles ...string) (*Model, dealservice.Service) {
	t.Helper()
	ctx := context.Background()
	cfg := config.Default()

	n := 0
	svc, err := dealservice.NewService(ctx, database.NewMemStore(), cfg.Stages(), nil,
		board.WithIDGenerator(func() types.DealID {
			n++
			return types.DealID(fmt.Sprintf("deal-%d", n))
		}))
	require.NoError(t, err)

	for _, title := range titles {
		_, err := svc.AddDeal(ctx, dealservice.CreateDealRequest{Title: title, Company: "Acme", Amount: "100"})
		require.NoError(t, err)
	}

	m := NewModel(ctx, svc, cfg)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return m, svc
}

func press(m *Model, key string) tea.Cmd {
	var k tea.Key
	switch key {
	case "enter":
		k = tea.Key{Code: tea.KeyEnter}
	case "right":
		k = tea.Key{Code: tea.KeyRight}
	case "down":
		k = tea.Key{Code: tea.KeyDown}
	case "esc":
		k = tea.Key{Code: tea.KeyEscape}
	case "ctrl+s":
		k = tea.Key{Code: 's', Mod: tea.ModCtrl}
	default:
		k = tea.Key{Text: key, Code: []rune(key)[0]}
	}
	_, cmd := m.Update(tea.KeyPressMsg(k))
	return cmd
}

func stageTitles(m *Model, stage int) []string {
	var titles []string
	for _, id := range m.board.Stages[stage].DealIDs {
		titles = append(titles, m.board.Deals[id].Title)
	}
	return titles
}

func TestNavigation(t *testing.T) {
	m, _ := setupTestModel(t, "a", "b")

	press(m, "j")
	assert.Equal(t, 1, m.UiState.SelectedDeal())

	press(m, "j")
	assert.Equal(t, 1, m.UiState.SelectedDeal(), "selection stays on the last deal")

	press(m, "right")
	assert.Equal(t, 1, m.UiState.SelectedStage())
	assert.Equal(t, 0, m.UiState.SelectedDeal(), "empty stage has no row")

	press(m, "h")
	press(m, "down")
	assert.Equal(t, 0, m.UiState.SelectedStage())
}

func TestMoveKeys(t *testing.T) {
	m, svc := setupTestModel(t, "a", "b")

	press(m, "J")
	assert.Equal(t, []string{"b", "a"}, stageTitles(m, 0))
	assert.Equal(t, 1, m.UiState.SelectedDeal(), "selection follows the moved deal")

	press(m, "L")
	assert.Equal(t, []string{"b"}, stageTitles(m, 0))
	assert.Equal(t, []string{"a"}, stageTitles(m, 1))
	assert.Equal(t, 1, m.UiState.SelectedStage())

	summaries := svc.Summaries()
	assert.Equal(t, 1, summaries[1].Count)

	press(m, "K")
	n, ok := m.NotificationState.Current()
	require.True(t, ok)
	assert.Equal(t, state.LevelInfo, n.Level, "moving past the edge is a notice, not an error")
}

func TestDeleteConfirm(t *testing.T) {
	m, svc := setupTestModel(t, "a", "b")

	press(m, "x")
	assert.Equal(t, state.DeleteConfirmMode, m.UiState.Mode())
	assert.Contains(t, m.render(), `Delete "a"? (y/n)`)

	press(m, "n")
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.Len(t, svc.Board().Deals, 2)

	press(m, "x")
	press(m, "y")
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.Equal(t, []string{"b"}, stageTitles(m, 0))
}

func TestOverlays(t *testing.T) {
	m, _ := setupTestModel(t, "Website Redesign")

	press(m, "?")
	assert.Equal(t, state.HelpMode, m.UiState.Mode())
	assert.Contains(t, m.render(), "select stage")

	press(m, "q")
	assert.Equal(t, state.NormalMode, m.UiState.Mode(), "any key closes the overlay")

	press(m, "enter")
	assert.Equal(t, state.DetailMode, m.UiState.Mode())
	view := m.render()
	assert.Contains(t, view, "Website Redesign")
	assert.Contains(t, view, "deal-1")
}

func TestDetail_EmptyStage(t *testing.T) {
	m, _ := setupTestModel(t)

	press(m, "enter")
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	press(m, "x")
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
}

func TestQuit(t *testing.T) {
	m, _ := setupTestModel(t)

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRefreshMsg(t *testing.T) {
	m, svc := setupTestModel(t)
	ctx := context.Background()

	_, err := svc.AddDeal(ctx, dealservice.CreateDealRequest{Title: "Annual Contract", Company: "Acme", Amount: "15000"})
	require.NoError(t, err)
	assert.Empty(t, m.board.Deals, "the model holds a snapshot until refreshed")

	m.Update(RefreshMsg{Event: events.Event{Type: events.EventDealCreated, Title: "Annual Contract", StageID: "new-leads"}})
	assert.Len(t, m.board.Deals, 1)

	n, ok := m.NotificationState.Current()
	require.True(t, ok)
	assert.Equal(t, "Added Annual Contract to new-leads", n.Message)
	assert.Contains(t, m.render(), "Added Annual Contract to new-leads")
	assert.Contains(t, m.render(), "$15,000")
}

func TestRender(t *testing.T) {
	m, _ := setupTestModel(t, "a", "b", "c")
	view := m.render()

	for _, label := range []string{"New Leads", "Qualified", "Negotiation", "Closed Won"} {
		assert.Contains(t, view, label)
	}
	assert.Contains(t, view, "3 deals")
	assert.Contains(t, view, "$300")
	assert.Contains(t, view, "press ? for help")
}

func TestRender_Loading(t *testing.T) {
	cfg := config.Default()
	svc, err := dealservice.NewService(context.Background(), database.NewMemStore(), cfg.Stages(), nil)
	require.NoError(t, err)

	m := NewModel(context.Background(), svc, cfg)
	assert.Equal(t, "Loading...", m.View().Content)
}

func TestRender_ScrollsToSelection(t *testing.T) {
	titles := make([]string, 12)
	for i := range titles {
		titles[i] = fmt.Sprintf("deal %02d", i)
	}
	m, _ := setupTestModel(t, titles...)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 20})

	for range titles {
		press(m, "j")
	}
	view := m.render()
	assert.Contains(t, view, "deal 11")
	assert.NotContains(t, view, "deal 00")
	assert.NotContains(t, view, "more", "cards above the window are not counted as hidden")
}

func TestSubscribeToEvents(t *testing.T) {
	m, _ := setupTestModel(t)
	assert.Nil(t, m.Init(), "no feed without a subscriber")

	feed := make(chan events.Event, 1)
	m.EventChan = feed
	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Nil(t, m.Init(), "subscription starts once")

	feed <- events.Event{Type: events.EventDealDeleted, DealID: "deal-9"}
	msg := cmd()
	require.IsType(t, RefreshMsg{}, msg)
	assert.Equal(t, types.DealID("deal-9"), msg.(RefreshMsg).Event.DealID)

	close(feed)
	assert.Nil(t, SubscribeToEvents(m)())
}

func TestUpdate_ContextDone(t *testing.T) {
	m, _ := setupTestModel(t)
	ctx, cancel := context.WithCancel(context.Background())
	m.Ctx = ctx
	cancel()

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 10, Height: 10})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
