// Package http provides HTTP handlers for the table session API.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mpmisha/TindeResturant/internal/models"
)

// TableService defines the session operations required by the TableHandler.
type TableService interface {
	// Create starts a new table and returns its code, the creator's user
	// ID, and the initial snapshot.
	Create(ctx context.Context, restaurantID, displayName string) (string, string, *models.TableData, error)
	// Join adds a user to an existing table and returns the new user ID
	// and the post-join snapshot.
	Join(ctx context.Context, code, displayName string) (string, *models.TableData, error)
	// PushSelections merges the user's dish IDs into their stored list.
	PushSelections(ctx context.Context, code, userID string, dishIDs []int) (*models.TableData, error)
	// Snapshot returns the current table state.
	Snapshot(ctx context.Context, code string) (*models.TableData, error)
	// Exists reports whether the table code is live.
	Exists(ctx context.Context, code string) (bool, error)
}

// TableHandler handles HTTP requests for table sessions.
type TableHandler struct {
	TableService TableService
}

// Create handles POST /api/tables.
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RestaurantID string `json:"restaurantId"`
		Name         string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.RestaurantID == "" {
		http.Error(w, "restaurantId is required", http.StatusBadRequest)
		return
	}

	code, userID, snap, err := h.TableService.Create(r.Context(), req.RestaurantID, req.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"code":   code,
		"userId": userID,
		"table":  snap,
	})
}

// Join handles POST /api/tables/{code}/join.
func (h *TableHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	userID, snap, err := h.TableService.Join(r.Context(), code, req.Name)
	if err == models.ErrSessionNotFound {
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userId": userID,
		"table":  snap,
	})
}

// PushSelections handles PUT /api/tables/{code}/users/{userID}/selections.
func (h *TableHandler) PushSelections(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	userID := chi.URLParam(r, "userID")

	var req struct {
		DishIDs []int `json:"dishIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	snap, err := h.TableService.PushSelections(r.Context(), code, userID, req.DishIDs)
	if err == models.ErrSessionNotFound {
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"table": snap})
}

// Snapshot handles GET /api/tables/{code}.
func (h *TableHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	snap, err := h.TableService.Snapshot(r.Context(), code)
	if err == models.ErrSessionNotFound {
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"table": snap})
}

// Exists handles GET /api/tables/{code}/exists.
func (h *TableHandler) Exists(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	ok, err := h.TableService.Exists(r.Context(), code)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"exists": ok})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
