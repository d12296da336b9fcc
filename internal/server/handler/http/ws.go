package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mpmisha/TindeResturant/internal/models"
	"github.com/mpmisha/TindeResturant/internal/service"
)

const wsWriteTimeout = 10 * time.Second

// WSHandler upgrades table subscription requests to WebSocket and streams
// snapshots from the hub. Each connection is one subscription; closing the
// connection unsubscribes.
type WSHandler struct {
	Hub     *service.Hub
	Service TableService
	Logger  *zap.Logger

	upgrader websocket.Upgrader
}

// NewWSHandler builds a WSHandler over the given hub.
func NewWSHandler(hub *service.Hub, svc TableService, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		Hub:     hub,
		Service: svc,
		Logger:  logger,
		upgrader: websocket.Upgrader{
			// The table code is the only credential this system has.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Subscribe handles GET /api/tables/{code}/ws.
func (h *WSHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	// Probe before upgrading so unknown codes get a clean 404.
	snap, err := h.Service.Snapshot(r.Context(), code)
	if err == models.ErrSessionNotFound {
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := h.Hub.Subscribe(code)
	defer h.Hub.Unsubscribe(sub)

	// Reader goroutine: we never expect client frames, but reading is what
	// detects the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(s *models.TableData) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(map[string]any{"table": s}); err != nil {
			return false
		}
		return true
	}

	// Initial snapshot so the subscriber starts from current state.
	if !write(snap) {
		_ = conn.Close()
		return
	}

	for {
		select {
		case <-done:
			_ = conn.Close()
			return
		case s, ok := <-sub.C:
			if !ok {
				_ = conn.Close()
				return
			}
			if !write(s) {
				_ = conn.Close()
				return
			}
		}
	}
}
