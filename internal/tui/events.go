package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealdesk/internal/events"
)

// RefreshMsg is sent when a board change was published
type RefreshMsg struct {
	Event events.Event
}

// SubscribeToEvents returns a command that waits for the next event and
// turns it into a RefreshMsg. Returns nil if EventChan is not initialized.
func SubscribeToEvents(m *Model) tea.Cmd {
	if m.EventChan == nil {
		return nil
	}

	feed := m.EventChan
	ctx := m.Ctx
	return func() tea.Msg {
		select {
		case event, ok := <-feed:
			if !ok {
				// Subscription ended
				return nil
			}
			return RefreshMsg{Event: event}
		case <-ctx.Done():
			return nil
		}
	}
}
