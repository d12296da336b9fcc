// Package service provides business logic for shared table sessions,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/mpmisha/TindeResturant/internal/models"
	"github.com/mpmisha/TindeResturant/internal/repository"
)

// TableService implements the table session operations: create, join,
// selection push, snapshot, and existence probe. Every successful mutation
// broadcasts the fresh snapshot through the hub.
type TableService struct {
	repo repository.TableRepository
	hub  *Hub
}

// NewTableService constructs a TableService over the given repository.
func NewTableService(repo repository.TableRepository) *TableService {
	return &TableService{repo: repo, hub: NewHub()}
}

// Hub exposes the snapshot fan-out for the push transport.
func (s *TableService) Hub() *Hub { return s.hub }

// Create starts a new table for the restaurant. The creator gets palette
// color 0 and a defaulted name when none is given.
func (s *TableService) Create(ctx context.Context, restaurantID, displayName string) (string, string, *models.TableData, error) {
	code := GenerateTableCode()
	userID := GenerateUserID()
	if displayName == "" {
		displayName = "User 1"
	}
	creator := models.User{ID: userID, Name: displayName, Color: ColorForIndex(0)}

	if err := s.repo.Create(ctx, code, restaurantID, creator); err != nil {
		return "", "", nil, &models.StoreWriteError{Op: "create table", Err: err}
	}

	snap, err := s.snapshotAndNotify(ctx, code)
	if err != nil {
		return "", "", nil, err
	}
	return code, userID, snap, nil
}

// Join adds a user to an existing table. The probe runs first so an
// unknown code fails fast with ErrSessionNotFound; the user insert is a
// merge, never a whole-record replace.
func (s *TableService) Join(ctx context.Context, code, displayName string) (string, *models.TableData, error) {
	current, err := s.repo.Get(ctx, code)
	if err == models.ErrSessionNotFound {
		return "", nil, models.ErrSessionNotFound
	}
	if err != nil {
		return "", nil, &models.StoreReadError{Op: "join probe", Err: err}
	}

	ordinal := current.MemberCount()
	userID := GenerateUserID()
	if displayName == "" {
		displayName = fmt.Sprintf("User %d", ordinal+1)
	}
	u := models.User{ID: userID, Name: displayName, Color: ColorForIndex(ordinal)}

	if err := s.repo.AddUser(ctx, code, u); err != nil {
		return "", nil, &models.StoreWriteError{Op: "join table", Err: err}
	}

	snap, err := s.snapshotAndNotify(ctx, code)
	if err != nil {
		return "", nil, err
	}
	return userID, snap, nil
}

// PushSelections merges the user's dish IDs into their stored selection
// list: ids already present keep their position, new ones append. Only
// the caller's own list is written.
func (s *TableService) PushSelections(ctx context.Context, code, userID string, dishIDs []int) (*models.TableData, error) {
	current, err := s.repo.Get(ctx, code)
	if err == models.ErrSessionNotFound {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, &models.StoreReadError{Op: "push read", Err: err}
	}

	merged := userSelectionList(current, userID)
	have := map[string]bool{}
	for _, id := range merged {
		have[id] = true
	}
	for _, id := range dishIDs {
		key := strconv.Itoa(id)
		if !have[key] {
			have[key] = true
			merged = append(merged, key)
		}
	}

	if err := s.repo.SetUserSelections(ctx, code, userID, merged); err != nil {
		return nil, &models.StoreWriteError{Op: "push selections", Err: err}
	}

	return s.snapshotAndNotify(ctx, code)
}

// Snapshot returns the current table state.
func (s *TableService) Snapshot(ctx context.Context, code string) (*models.TableData, error) {
	snap, err := s.repo.Get(ctx, code)
	if err == models.ErrSessionNotFound {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, &models.StoreReadError{Op: "snapshot", Err: err}
	}
	return snap, nil
}

// Exists reports whether a table code is live. Existence only, no
// authorization.
func (s *TableService) Exists(ctx context.Context, code string) (bool, error) {
	ok, err := s.repo.Exists(ctx, code)
	if err != nil {
		return false, &models.StoreReadError{Op: "exists", Err: err}
	}
	return ok, nil
}

func (s *TableService) snapshotAndNotify(ctx context.Context, code string) (*models.TableData, error) {
	snap, err := s.repo.Get(ctx, code)
	if err != nil {
		return nil, &models.StoreReadError{Op: "refresh", Err: err}
	}
	s.hub.Broadcast(code, snap)
	return snap, nil
}

// userSelectionList reconstructs one user's selection list from the merged
// snapshot, in numeric dish order for determinism.
func userSelectionList(snap *models.TableData, userID string) []string {
	var ids []string
	for dishID, users := range snap.Selections {
		for _, u := range users {
			if u == userID {
				ids = append(ids, dishID)
				break
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		return a < b
	})
	return ids
}
