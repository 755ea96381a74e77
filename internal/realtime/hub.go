// Package realtime owns the WebSocket session registry. Delivery is
// best-effort: an event sent to a user with no live session is dropped, and
// there is no backlog or replay on reconnect.
package realtime

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Notifier is the narrow push interface consumed by services. Send reports
// whether the payload reached at least one live session.
type Notifier interface {
	Send(userID uuid.UUID, event string, payload interface{}) bool
}

// session is the subset of a websocket connection the hub needs. It keeps the
// hub testable without a live socket.
type session interface {
	WriteJSON(v interface{}) error
}

// client wraps a session with a write lock. The underlying websocket permits
// only one writer at a time, while Send gets called from arbitrary request
// goroutines.
type client struct {
	mu sync.Mutex
	s  session
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.WriteJSON(v)
}

// Envelope is the wire frame for every pushed event.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub maps user IDs to their live sessions. A user may hold several sessions
// (multiple tabs/devices); Send fans out to all of them.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]map[session]*client
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[uuid.UUID]map[session]*client)}
}

func (h *Hub) register(userID uuid.UUID, s session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[userID] == nil {
		h.sessions[userID] = make(map[session]*client)
	}
	h.sessions[userID][s] = &client{s: s}
}

func (h *Hub) unregister(userID uuid.UUID, s session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.sessions[userID]; ok {
		delete(conns, s)
		if len(conns) == 0 {
			delete(h.sessions, userID)
		}
	}
}

// Send pushes an event to every live session of userID. Writes to a single
// session are serialized through its client lock. Write failures only evict
// the dead session; they never propagate to the caller.
func (h *Hub) Send(userID uuid.UUID, event string, payload interface{}) bool {
	h.mu.RLock()
	conns := make([]*client, 0, len(h.sessions[userID]))
	for _, c := range h.sessions[userID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	if len(conns) == 0 {
		return false
	}

	frame := Envelope{Event: event, Data: payload}
	delivered := false
	for _, c := range conns {
		if err := c.writeJSON(frame); err != nil {
			slog.Debug("websocket write failed, dropping session", "user_id", userID, "event", event, "error", err)
			h.unregister(userID, c.s)
			continue
		}
		delivered = true
	}
	return delivered
}

// ConnectedUsers returns the number of users with at least one live session.
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
