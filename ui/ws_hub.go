package ui

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"pravaah/domain/alert"
	"pravaah/internal"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub tracks active WebSocket connections and pushes raised alerts to
// every open dashboard. Implements the alert publisher port.
type Hub struct {
	mu          sync.RWMutex
	connections []*websocket.Conn
	logger      *internal.Logger
}

// NewHub creates a WebSocket hub.
func NewHub(logger *internal.Logger) *Hub {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Hub{logger: logger}
}

// HandleWS upgrades an HTTP connection to WebSocket and registers it.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.connections = append(h.connections, conn)
	h.mu.Unlock()

	defer func() {
		h.remove(conn)
		conn.Close()
	}()

	// Inbound messages are ignored; the read loop only detects close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Publish broadcasts each alert to all connected clients.
func (h *Hub) Publish(ctx context.Context, alerts []alert.Alert) error {
	for _, a := range alerts {
		h.broadcast(map[string]interface{}{
			"type":     "alert",
			"id":       a.ID,
			"metric":   a.Metric,
			"observed": a.Observed,
			"limit":    a.Limit,
			"severity": a.Severity,
			"message":  a.Message,
		})
	}
	return nil
}

// Clients returns the number of open connections.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) broadcast(data map[string]interface{}) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, len(h.connections))
	copy(conns, h.connections)
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(data); err != nil {
			h.remove(conn)
			conn.Close()
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, c := range h.connections {
		if c == conn {
			h.connections = append(h.connections[:i], h.connections[i+1:]...)
			return
		}
	}
}
