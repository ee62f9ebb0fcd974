// Package realtime fans collection changes out to in-process subscribers.
package realtime

import (
	"sync"

	"schooladmin/internal/domain"
)

// Hub is an in-memory domain.ChangeFeed. Callbacks run on the publishing
// goroutine, so subscribers must not block.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]func(domain.Change)
}

var _ domain.ChangeFeed = (*Hub)(nil)

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[uint64]func(domain.Change))}
}

// Subscribe registers fn for changes of collection. The returned cancel
// function may be called any number of times.
func (h *Hub) Subscribe(collection string, fn func(domain.Change)) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[uint64]func(domain.Change))
	}
	h.subs[collection][id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[collection], id)
			if len(h.subs[collection]) == 0 {
				delete(h.subs, collection)
			}
		})
	}
}

// Publish delivers c to every current subscriber of c.Collection.
func (h *Hub) Publish(c domain.Change) {
	h.mu.RLock()
	fns := make([]func(domain.Change), 0, len(h.subs[c.Collection]))
	for _, fn := range h.subs[c.Collection] {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(c)
	}
}

// Subscribers returns the number of active subscriptions for collection.
func (h *Hub) Subscribers(collection string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[collection])
}
