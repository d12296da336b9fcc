package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mpmisha/TindeResturant/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// NewRouter constructs the HTTP handler for the table session API.
//
// Routes:
//
//	POST /api/tables                                  → TableHandler.Create
//	GET  /api/tables/{code}                           → TableHandler.Snapshot
//	GET/HEAD /api/tables/{code}/exists                → TableHandler.Exists
//	POST /api/tables/{code}/join                      → TableHandler.Join
//	PUT  /api/tables/{code}/users/{userID}/selections → TableHandler.PushSelections
//	GET  /api/tables/{code}/ws                        → WSHandler.Subscribe
func NewRouter(
	tableHandler *TableHandler,
	wsHandler *WSHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/tables", func(r chi.Router) {
			r.Post("/", tableHandler.Create)
			r.Route("/{code}", func(r chi.Router) {
				r.Get("/", tableHandler.Snapshot)
				r.Get("/exists", tableHandler.Exists)
				r.Head("/exists", tableHandler.Exists)
				r.Post("/join", tableHandler.Join)
				r.Put("/users/{userID}/selections", tableHandler.PushSelections)
				r.Get("/ws", wsHandler.Subscribe)
			})
		})
	})

	return r
}
