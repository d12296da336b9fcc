// Package repository provides persistence implementations for shared table
// sessions.
package repository

import (
	"context"

	"github.com/mpmisha/TindeResturant/internal/models"
)

// TableRepository is the persistence contract for table sessions. A user's
// selections live under their own key, so concurrent pushes from different
// users never overwrite each other.
type TableRepository interface {
	// Create writes a brand-new table record. The code is assumed fresh;
	// a colliding code overwrites, matching last-write-wins store semantics.
	Create(ctx context.Context, code string, restaurantID string, creator models.User) error
	// Exists probes for a table without fetching it.
	Exists(ctx context.Context, code string) (bool, error)
	// Get returns the merged snapshot (users plus the dishID -> [userID]
	// selections view), or models.ErrSessionNotFound.
	Get(ctx context.Context, code string) (*models.TableData, error)
	// AddUser merges one user into the table without touching other users.
	AddUser(ctx context.Context, code string, u models.User) error
	// SetUserSelections replaces the given user's selection list only.
	SetUserSelections(ctx context.Context, code, userID string, dishIDs []string) error
}
