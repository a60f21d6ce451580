package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/opsdesk/helpdesk-engine/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// AlertHub fans SLA alerts out to connected websocket clients. The SLA
// monitor publishes into it; a hub with no subscribers drops alerts.
type AlertHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewAlertHub creates an empty hub
func NewAlertHub() *AlertHub {
	return &AlertHub{conns: make(map[*websocket.Conn]struct{})}
}

// Publish sends an alert to every connected subscriber. Dead connections
// are dropped on write failure.
func (h *AlertHub) Publish(alert models.SLAAlert) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(alert); err != nil {
			slog.Debug("dropping dead alert subscriber", "error", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Subscribers returns the number of connected clients
func (h *AlertHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *AlertHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *AlertHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// handleAlertStream upgrades the request to a websocket and streams SLA
// alerts until the client disconnects.
func (s *Server) handleAlertStream(w http.ResponseWriter, r *http.Request) {
	if s.alerts == nil {
		respondError(w, http.StatusServiceUnavailable, "not_available", "alert streaming is not enabled")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}

	s.alerts.add(conn)
	slog.Info("alert subscriber connected", "remote_addr", r.RemoteAddr)

	// Reads only serve to detect disconnects; clients don't send data.
	go func() {
		defer func() {
			s.alerts.remove(conn)
			conn.Close()
			slog.Info("alert subscriber disconnected", "remote_addr", r.RemoteAddr)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					slog.Debug("websocket read error", "error", err)
				}
				return
			}
		}
	}()
}
