package events

import (
	"time"

	"github.com/thenoetrevino/dealdesk/internal/types"
)

// EventType indicates what kind of change occurred
type EventType string

const (
	EventDealCreated EventType = "deal_created"
	EventDealUpdated EventType = "deal_updated"
	EventDealMoved   EventType = "deal_moved"
	EventDealDeleted EventType = "deal_deleted"
	EventBoardLoaded EventType = "board_loaded"
)

// Event represents a committed board change
type Event struct {
	Type    EventType
	DealID  types.DealID  // Empty for board-wide events
	StageID types.StageID // Stage the deal ended up in, or left for deletes
	Title   string        // Deal title at the time of the change, for notices

	Version    uint64    // Board version after the change
	Timestamp  time.Time // When the event occurred
	SequenceID int64     // Monotonically increasing sequence number for ordering
}

// Notice renders a short human-readable description of the event
func (e Event) Notice() string {
	name := e.Title
	if name == "" {
		name = e.DealID.String()
	}
	switch e.Type {
	case EventDealCreated:
		return "Added " + name + " to " + e.StageID.String()
	case EventDealUpdated:
		return "Updated " + name
	case EventDealMoved:
		return "Moved " + name + " to " + e.StageID.String()
	case EventDealDeleted:
		return "Deleted " + name
	case EventBoardLoaded:
		return "Board reloaded"
	default:
		return string(e.Type)
	}
}
