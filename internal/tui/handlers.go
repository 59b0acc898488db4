package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealdesk/internal/models"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
	"github.com/thenoetrevino/dealdesk/internal/tui/state"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// handleKey dispatches key presses by mode
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}

	switch m.UiState.Mode() {
	case state.DeleteConfirmMode:
		return m.handleDeleteConfirm(key)
	case state.HelpMode, state.DetailMode:
		// Any key closes the overlay
		m.UiState.SetMode(state.NormalMode)
		return nil
	default:
		return m.handleNormalMode(key)
	}
}

// handleNormalMode handles navigation and deal commands
func (m *Model) handleNormalMode(key string) tea.Cmd {
	km := m.Config.KeyMappings

	switch key {
	case km.Quit:
		return m.quit()
	case km.ShowHelp:
		m.UiState.SetMode(state.HelpMode)
	case km.AddDeal:
		return m.openAddForm()
	case km.EditDeal:
		return m.openEditForm()
	case km.ViewDeal:
		if _, ok := m.currentDeal(); ok {
			m.UiState.SetMode(state.DetailMode)
		}
	case km.DeleteDeal:
		if _, ok := m.currentDeal(); ok {
			m.UiState.SetMode(state.DeleteConfirmMode)
		}
	case km.PrevStage, "left":
		m.navigate(-1, 0)
	case km.NextStage, "right":
		m.navigate(1, 0)
	case km.PrevDeal, "up":
		m.navigate(0, -1)
	case km.NextDeal, "down":
		m.navigate(0, 1)
	case km.MoveDealLeft:
		m.move(m.deals.MoveDealToPrevStage)
	case km.MoveDealRight:
		m.move(m.deals.MoveDealToNextStage)
	case km.MoveDealUp:
		m.move(m.deals.MoveDealUp)
	case km.MoveDealDown:
		m.move(m.deals.MoveDealDown)
	case km.Reload:
		if err := m.deals.Reload(m.Ctx); err != nil {
			m.notifyError("reload board", err)
		}
		m.refresh()
	}
	return nil
}

// handleDeleteConfirm waits for y/n after a delete request
func (m *Model) handleDeleteConfirm(key string) tea.Cmd {
	m.UiState.SetMode(state.NormalMode)
	if key != "y" && key != "Y" {
		return nil
	}

	d, ok := m.currentDeal()
	if !ok {
		return nil
	}
	if err := m.deals.RemoveDeal(m.Ctx, d.ID); err != nil {
		m.notifyError("delete deal", err)
	}
	m.refresh()
	return nil
}

// navigate moves the selection. Changing stage keeps the row where possible.
func (m *Model) navigate(dStage, dDeal int) {
	m.UiState.Select(m.UiState.SelectedStage()+dStage, m.UiState.SelectedDeal()+dDeal)
	m.refresh()
}

// move applies a step move to the selected deal and follows it
func (m *Model) move(step func(ctx context.Context, id types.DealID) (*models.Move, error)) {
	d, ok := m.currentDeal()
	if !ok {
		return
	}

	move, err := step(m.Ctx, d.ID)
	m.refresh()
	if err != nil {
		m.notifyError("move deal", err)
		return
	}
	m.selectDeal(move.DealID)
	m.refresh()
}

func (m *Model) notifyError(action string, err error) {
	if dealservice.IsBoundary(err) {
		m.NotificationState.Add(state.LevelInfo, err.Error())
		return
	}
	if errors.Is(err, models.ErrStaleMove) {
		slog.Warn("failed to "+action, "error", err)
		m.NotificationState.Add(state.LevelError, "Board changed elsewhere, press r to reload")
		return
	}
	slog.Error("failed to "+action, "error", err)
	if errors.Is(err, models.ErrInvariantViolation) {
		m.NotificationState.Add(state.LevelError, "Board is inconsistent, press r to reload")
		return
	}
	m.NotificationState.Add(state.LevelError, err.Error())
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}
