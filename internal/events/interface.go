package events

// EventPublisher defines the interface for sending events.
// This interface allows for loose coupling and easier testing by depending
// on behavior rather than concrete implementation.
type EventPublisher interface {
	// SendEvent queues an event for delivery
	SendEvent(event Event) error

	// Close stops delivery and releases resources
	Close() error
}

// Subscriber is implemented by publishers that deliver events in-process
type Subscriber interface {
	// Subscribe returns a channel of events and a function that ends the
	// subscription. The channel is closed when the subscription ends.
	Subscribe(buffer int) (<-chan Event, func())
}

// Compile-time verification that *Bus implements both interfaces
var (
	_ EventPublisher = (*Bus)(nil)
	_ Subscriber     = (*Bus)(nil)
)
