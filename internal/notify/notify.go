// Package notify delivers blocking user notifications, such as a failed
// remote save, to every connected client.
package notify

import (
	"log/slog"
	"sync"
)

// Hub fans alerts out to subscribers. The zero value is not usable; use New.
type Hub struct {
	logger *slog.Logger

	mu   sync.Mutex
	next int
	subs map[int]chan string
}

// New creates a Hub that also logs every alert to logger.
func New(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger: logger,
		subs:   make(map[int]chan string),
	}
}

// Alert sends message to every subscriber. A subscriber whose buffer is full
// misses the alert; Alert never blocks.
func (h *Hub) Alert(message string) {
	h.logger.Warn("User alert", "message", message)

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- message:
		default:
		}
	}
}

// Subscribe returns a channel receiving alerts and a function that cancels
// the subscription and closes the channel.
func (h *Hub) Subscribe(buffer int) (<-chan string, func()) {
	ch := make(chan string, buffer)

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}
