package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Bus is an in-process EventPublisher that fans events out to subscribers.
// SendEvent never blocks: events go through a bounded queue to a single
// dispatch goroutine, and a subscriber whose buffer is full misses the event.
type Bus struct {
	queue    chan Event
	sequence atomic.Int64
	dropped  atomic.Int64

	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	closed bool

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc

	// Dispatch goroutine
	done chan struct{}
}

// NewBus creates a bus and starts its dispatch goroutine.
// queueSize bounds the number of undelivered events; 100 if not positive.
func NewBus(queueSize int) *Bus {
	if queueSize <= 0 {
		queueSize = 100
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &Bus{
		queue:  make(chan Event, queueSize),
		subs:   make(map[int]chan Event),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go b.dispatch()
	return b
}

// SendEvent stamps the event with a sequence number and queues it.
// Returns ErrQueueFull if the queue is full (non-blocking send).
func (b *Bus) SendEvent(event Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	event.SequenceID = b.sequence.Add(1)
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case b.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe registers a subscriber with the given channel buffer.
// The returned cancel function is safe to call more than once.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, max(buffer, 1))
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// Dropped returns how many deliveries were skipped because a subscriber was full
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// Close stops the dispatch goroutine after it has delivered queued events,
// then closes every subscriber channel.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	<-b.done

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
	return nil
}

// dispatch runs in a goroutine and delivers queued events to subscribers
func (b *Bus) dispatch() {
	defer close(b.done)

	for {
		select {
		case <-b.ctx.Done():
			// Deliver anything still queued before exiting
			for {
				select {
				case event := <-b.queue:
					b.deliver(event)
				default:
					return
				}
			}
		case event := <-b.queue:
			b.deliver(event)
		}
	}
}

func (b *Bus) deliver(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
			slog.Debug("dropped event for slow subscriber",
				"subscriber", id,
				"event_type", event.Type,
				"sequence", event.SequenceID)
		}
	}
}
