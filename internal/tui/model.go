package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealdesk/internal/app"
	"github.com/thenoetrevino/dealdesk/internal/config"
	"github.com/thenoetrevino/dealdesk/internal/events"
	"github.com/thenoetrevino/dealdesk/internal/models"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
	"github.com/thenoetrevino/dealdesk/internal/tui/state"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// eventBuffer is the subscription buffer for live updates
const eventBuffer = 16

// Model represents the application state for the TUI
type Model struct {
	Ctx    context.Context
	Config *config.Config

	deals dealservice.Service

	// Live updates; nil when the publisher does not deliver in-process
	EventChan           <-chan events.Event
	cancelSubscription  func()
	SubscriptionStarted bool

	board     models.Board
	summaries []models.StageSummary

	UiState           *state.UIState
	NotificationState *state.NotificationState
	FormState         *state.FormState

	styles styles
}

// InitialModel creates the TUI model over an application, subscribing to its
// events when they are delivered in-process
func InitialModel(ctx context.Context, application *app.App, cfg *config.Config) *Model {
	m := NewModel(ctx, application.DealService, cfg)
	if feed, cancel, ok := application.Subscribe(eventBuffer); ok {
		m.EventChan = feed
		m.cancelSubscription = cancel
	}
	return m
}

// NewModel creates a TUI model over a deal service without live updates
func NewModel(ctx context.Context, deals dealservice.Service, cfg *config.Config) *Model {
	m := &Model{
		Ctx:                ctx,
		Config:             cfg,
		deals:              deals,
		cancelSubscription: func() {},
		UiState:            state.NewUIState(),
		NotificationState:  state.NewNotificationState(),
		FormState:          state.NewFormState(),
		styles:             newStyles(cfg.ColorScheme),
	}
	m.refresh()
	return m
}

// Init starts listening for events.
// Required by tea.Model interface
func (m *Model) Init() tea.Cmd {
	if m.EventChan == nil || m.SubscriptionStarted {
		return nil
	}
	m.SubscriptionStarted = true
	return SubscribeToEvents(m)
}

// Update handles all messages and updates the model.
// Required by tea.Model interface
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	select {
	case <-m.Ctx.Done():
		m.Close()
		return m, tea.Quit
	default:
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UiState.SetWindowSize(msg.Width, msg.Height)
		return m, nil

	case RefreshMsg:
		m.refresh()
		m.NotificationState.Add(state.LevelInfo, msg.Event.Notice())
		// Continue listening for more events
		return m, SubscribeToEvents(m)
	}

	if m.UiState.Mode() == state.DealFormMode {
		return m, m.updateDealForm(msg)
	}
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		return m, m.handleKey(msg)
	}

	return m, nil
}

// View renders the current state of the application.
// Required by tea.Model interface
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.Content = m.render()
	return view
}

// Close ends the event subscription
func (m *Model) Close() {
	m.cancelSubscription()
}

// refresh reloads the board snapshot and keeps the selection on the board
func (m *Model) refresh() {
	m.board = m.deals.Board()
	m.summaries = m.deals.Summaries()

	lens := make([]int, len(m.board.Stages))
	for i, st := range m.board.Stages {
		lens[i] = len(st.DealIDs)
	}
	m.UiState.Clamp(lens)
}

// currentStage returns the selected stage, or nil on an empty pipeline
func (m *Model) currentStage() *models.Stage {
	i := m.UiState.SelectedStage()
	if i >= len(m.board.Stages) {
		return nil
	}
	return &m.board.Stages[i]
}

// currentDeal returns the selected deal and whether there is one
func (m *Model) currentDeal() (models.Deal, bool) {
	st := m.currentStage()
	if st == nil || len(st.DealIDs) == 0 {
		return models.Deal{}, false
	}
	d, ok := m.board.Deals[st.DealIDs[m.UiState.SelectedDeal()]]
	return d, ok
}

// selectDeal moves the selection to wherever the deal now sits
func (m *Model) selectDeal(id types.DealID) {
	for si, st := range m.board.Stages {
		for di, did := range st.DealIDs {
			if did == id {
				m.UiState.Select(si, di)
				return
			}
		}
	}
}
