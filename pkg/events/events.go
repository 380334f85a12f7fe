// Package events provides the process-wide failure broadcast that passive
// observers (such as a status indicator) subscribe to. The API client
// publishes a Failure for every unhandled request error.
package events

import "sync"

// Failure is the payload broadcast when an API request fails.
type Failure struct {
	Message string `json:"message"`
}

// Bus fans Failure events out to every subscriber. Publishing never blocks:
// a subscriber that is not draining its channel misses events rather than
// stalling the publisher.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Failure
	next int
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Failure)}
}

// Subscribe registers a listener and returns its channel plus a cancel
// function. Cancel must be called when the listener goes away.
func (b *Bus) Subscribe() (<-chan Failure, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Failure, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers f to every current subscriber.
func (b *Bus) Publish(f Failure) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- f:
		default: // subscriber is behind, drop
		}
	}
}
