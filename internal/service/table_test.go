package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mpmisha/TindeResturant/internal/models"
	"github.com/mpmisha/TindeResturant/internal/service"
)

// memRepo is an in-memory TableRepository used to drive the service.
type memRepo struct {
	tables     map[string]string                 // code -> restaurant id
	users      map[string][]models.User          // code -> members in join order
	selections map[string]map[string][]string    // code -> user id -> dish ids
	failCreate error
	failGet    error
	failSet    error
}

func newMemRepo() *memRepo {
	return &memRepo{
		tables:     map[string]string{},
		users:      map[string][]models.User{},
		selections: map[string]map[string][]string{},
	}
}

func (m *memRepo) Create(_ context.Context, code, restaurantID string, creator models.User) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	m.tables[code] = restaurantID
	m.users[code] = []models.User{creator}
	m.selections[code] = map[string][]string{}
	return nil
}

func (m *memRepo) Exists(_ context.Context, code string) (bool, error) {
	_, ok := m.tables[code]
	return ok, nil
}

func (m *memRepo) Get(_ context.Context, code string) (*models.TableData, error) {
	if m.failGet != nil {
		return nil, m.failGet
	}
	rid, ok := m.tables[code]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	data := &models.TableData{
		Users:        map[string]models.User{},
		Selections:   map[string][]string{},
		RestaurantID: rid,
	}
	for _, u := range m.users[code] {
		data.Users[u.ID] = u
	}
	for _, u := range m.users[code] {
		for _, dishID := range m.selections[code][u.ID] {
			data.Selections[dishID] = append(data.Selections[dishID], u.ID)
		}
	}
	return data, nil
}

func (m *memRepo) AddUser(_ context.Context, code string, u models.User) error {
	m.users[code] = append(m.users[code], u)
	return nil
}

func (m *memRepo) SetUserSelections(_ context.Context, code, userID string, dishIDs []string) error {
	if m.failSet != nil {
		return m.failSet
	}
	m.selections[code][userID] = dishIDs
	return nil
}

func TestCreate(t *testing.T) {
	repo := newMemRepo()
	svc := service.NewTableService(repo)

	code, userID, snap, err := svc.Create(context.Background(), "bella-vista", "Misha")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("code = %q; want 6 chars", code)
	}
	if snap.RestaurantID != "bella-vista" {
		t.Errorf("restaurant = %q", snap.RestaurantID)
	}
	u, ok := snap.Users[userID]
	if !ok {
		t.Fatal("creator missing from snapshot")
	}
	if u.Name != "Misha" {
		t.Errorf("name = %q", u.Name)
	}
	if u.Color != service.ColorForIndex(0) {
		t.Errorf("creator color = %q; want palette index 0", u.Color)
	}
}

func TestCreate_DefaultName(t *testing.T) {
	svc := service.NewTableService(newMemRepo())
	_, userID, snap, err := svc.Create(context.Background(), "bella-vista", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if snap.Users[userID].Name != "User 1" {
		t.Errorf("name = %q; want \"User 1\"", snap.Users[userID].Name)
	}
}

func TestCreate_WriteError(t *testing.T) {
	repo := newMemRepo()
	repo.failCreate = errors.New("store down")
	svc := service.NewTableService(repo)

	_, _, _, err := svc.Create(context.Background(), "bella-vista", "")
	var writeErr *models.StoreWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("error = %v; want StoreWriteError", err)
	}
}

func TestJoin_UnknownCode(t *testing.T) {
	svc := service.NewTableService(newMemRepo())
	_, _, err := svc.Join(context.Background(), "NOPE99", "Bob")
	if err != models.ErrSessionNotFound {
		t.Fatalf("error = %v; want ErrSessionNotFound", err)
	}
}

func TestJoin_ColorByJoinOrdinal(t *testing.T) {
	repo := newMemRepo()
	svc := service.NewTableService(repo)

	code, _, _, err := svc.Create(context.Background(), "bella-vista", "Host")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Join twelve more users; the Nth member gets palette index N mod 10.
	for n := 1; n <= 12; n++ {
		userID, snap, err := svc.Join(context.Background(), code, fmt.Sprintf("Guest %d", n))
		if err != nil {
			t.Fatalf("Join %d failed: %v", n, err)
		}
		if got, want := snap.Users[userID].Color, service.ColorForIndex(n); got != want {
			t.Errorf("member %d color = %q; want %q", n, got, want)
		}
	}
}

func TestJoin_MergesWithoutOverwrite(t *testing.T) {
	repo := newMemRepo()
	svc := service.NewTableService(repo)

	code, hostID, _, _ := svc.Create(context.Background(), "bella-vista", "Host")
	userID, snap, err := svc.Join(context.Background(), code, "Guest")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	if len(snap.Users) != 2 {
		t.Fatalf("members = %d; want 2", len(snap.Users))
	}
	if _, ok := snap.Users[hostID]; !ok {
		t.Error("host lost after join")
	}
	if snap.Users[userID].Name != "Guest" {
		t.Errorf("guest name = %q", snap.Users[userID].Name)
	}
}

func TestJoin_DefaultNameByOrder(t *testing.T) {
	svc := service.NewTableService(newMemRepo())
	code, _, _, _ := svc.Create(context.Background(), "bella-vista", "")

	userID, snap, err := svc.Join(context.Background(), code, "")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if snap.Users[userID].Name != "User 2" {
		t.Errorf("name = %q; want \"User 2\"", snap.Users[userID].Name)
	}
}

func TestPushSelections_MergesOwnListOnly(t *testing.T) {
	repo := newMemRepo()
	svc := service.NewTableService(repo)

	code, hostID, _, _ := svc.Create(context.Background(), "bella-vista", "Host")
	guestID, _, _ := svc.Join(context.Background(), code, "Guest")

	if _, err := svc.PushSelections(context.Background(), code, hostID, []int{1, 3}); err != nil {
		t.Fatalf("host push failed: %v", err)
	}
	snap, err := svc.PushSelections(context.Background(), code, guestID, []int{3})
	if err != nil {
		t.Fatalf("guest push failed: %v", err)
	}

	if got := snap.Selections["1"]; len(got) != 1 || got[0] != hostID {
		t.Errorf("dish 1 contributors = %v; want [host]", got)
	}
	if got := snap.Selections["3"]; len(got) != 2 {
		t.Errorf("dish 3 contributors = %v; want host and guest", got)
	}

	// Pushing again with a superset appends without duplicating.
	snap, err = svc.PushSelections(context.Background(), code, hostID, []int{1, 3, 5})
	if err != nil {
		t.Fatalf("second host push failed: %v", err)
	}
	if got := snap.Selections["1"]; len(got) != 1 {
		t.Errorf("dish 1 contributors after re-push = %v", got)
	}
	if got := snap.Selections["5"]; len(got) != 1 || got[0] != hostID {
		t.Errorf("dish 5 contributors = %v; want [host]", got)
	}
}

func TestPushSelections_BroadcastsSnapshot(t *testing.T) {
	repo := newMemRepo()
	svc := service.NewTableService(repo)

	code, hostID, _, _ := svc.Create(context.Background(), "bella-vista", "Host")
	sub := svc.Hub().Subscribe(code)

	if _, err := svc.PushSelections(context.Background(), code, hostID, []int{2}); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	snap := <-sub.C
	if got := snap.Selections["2"]; len(got) != 1 || got[0] != hostID {
		t.Errorf("broadcast selections = %v", snap.Selections)
	}
}

func TestExists(t *testing.T) {
	repo := newMemRepo()
	svc := service.NewTableService(repo)
	code, _, _, _ := svc.Create(context.Background(), "bella-vista", "")

	ok, err := svc.Exists(context.Background(), code)
	if err != nil || !ok {
		t.Errorf("Exists(%q) = %v, %v; want true", code, ok, err)
	}
	ok, err = svc.Exists(context.Background(), "NOPE99")
	if err != nil || ok {
		t.Errorf("Exists(unknown) = %v, %v; want false", ok, err)
	}
}
