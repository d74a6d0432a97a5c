// Package sse fans tool activity events out to server-sent event streams.
package sse

import (
	"fmt"
	"sync"
)

// AllTools subscribes to every tool's events.
const AllTools = ""

type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan []byte]struct{})}
}

// Subscribe returns a channel of framed events for tool, or for every tool
// with AllTools, and a function that ends the subscription.
func (h *Hub) Subscribe(tool string) (chan []byte, func()) {
	ch := make(chan []byte, 8)
	h.mu.Lock()
	if _, ok := h.subs[tool]; !ok {
		h.subs[tool] = make(map[chan []byte]struct{})
	}
	h.subs[tool][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			if subscribers, ok := h.subs[tool]; ok {
				delete(subscribers, ch)
				if len(subscribers) == 0 {
					delete(h.subs, tool)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Broadcast delivers an event about tool to its subscribers and to those of
// AllTools. Slow subscribers miss events rather than block the caller.
func (h *Hub) Broadcast(tool, event string, data []byte) {
	payload := Frame(event, data)

	h.mu.RLock()
	defer h.mu.RUnlock()
	keys := []string{AllTools}
	if tool != AllTools {
		keys = append(keys, tool)
	}
	for _, key := range keys {
		for ch := range h.subs[key] {
			select {
			case ch <- payload:
			default:
			}
		}
	}
}

// Subscribers reports the number of open subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, subscribers := range h.subs {
		n += len(subscribers)
	}
	return n
}

// Frame encodes one server-sent event. data must not contain newlines.
func Frame(event string, data []byte) []byte {
	return fmt.Appendf(nil, "event: %s\ndata: %s\n\n", event, data)
}
