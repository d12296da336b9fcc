package table

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpmisha/TindeResturant/internal/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.Client())
}

func writeTable(w http.ResponseWriter, status int, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func TestCreateSession(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/tables", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "bella-vista", req["restaurantId"])
		assert.Equal(t, "Misha", req["name"])

		writeTable(w, http.StatusCreated, map[string]any{
			"code":   "AB12CD",
			"userId": "u1",
			"table": models.TableData{
				Users:        map[string]models.User{"u1": {ID: "u1", Name: "Misha"}},
				Selections:   map[string][]string{},
				RestaurantID: "bella-vista",
			},
		})
	})

	code, userID, snap, err := c.CreateSession(context.Background(), "bella-vista", "Misha")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", code)
	assert.Equal(t, "u1", userID)
	require.NotNil(t, snap)
	assert.Equal(t, "bella-vista", snap.RestaurantID)
}

func TestCreateSession_ServerError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, _, _, err := c.CreateSession(context.Background(), "bella-vista", "")
	var writeErr *models.StoreWriteError
	require.ErrorAs(t, err, &writeErr)
}

func TestJoinSession(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tables/AB12CD/exists":
			writeTable(w, http.StatusOK, map[string]any{"exists": true})
		case "/api/tables/AB12CD/join":
			require.Equal(t, http.MethodPost, r.Method)
			writeTable(w, http.StatusOK, map[string]any{
				"userId": "u2",
				"table": models.TableData{
					Users: map[string]models.User{
						"u1": {ID: "u1"},
						"u2": {ID: "u2", Name: "Guest"},
					},
					Selections:   map[string][]string{},
					RestaurantID: "bella-vista",
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	})

	userID, snap, err := c.JoinSession(context.Background(), "AB12CD", "Guest")
	require.NoError(t, err)
	assert.Equal(t, "u2", userID)
	require.NotNil(t, snap)
	assert.Len(t, snap.Users, 2)
}

func TestJoinSession_UnknownCode(t *testing.T) {
	var joined bool
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tables/NOPE99/exists":
			writeTable(w, http.StatusOK, map[string]any{"exists": false})
		default:
			joined = true
			http.NotFound(w, r)
		}
	})

	_, _, err := c.JoinSession(context.Background(), "NOPE99", "Guest")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
	assert.False(t, joined, "join must not run when the probe fails")
}

func TestPushSelections(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/tables/AB12CD/users/u1/selections", r.URL.Path)

		var req struct {
			DishIDs []int `json:"dishIds"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []int{1, 3}, req.DishIDs)

		writeTable(w, http.StatusOK, map[string]any{
			"table": models.TableData{
				Users:        map[string]models.User{"u1": {ID: "u1"}},
				Selections:   map[string][]string{"1": {"u1"}, "3": {"u1"}},
				RestaurantID: "bella-vista",
			},
		})
	})

	snap, err := c.PushSelections(context.Background(), "AB12CD", "u1", []int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, snap.Selections["3"])
}

func TestPushSelections_EmptyListSent(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			DishIDs []int `json:"dishIds"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotNil(t, req.DishIDs)
		assert.Empty(t, req.DishIDs)
		writeTable(w, http.StatusOK, map[string]any{"table": models.TableData{}})
	})

	_, err := c.PushSelections(context.Background(), "AB12CD", "u1", nil)
	require.NoError(t, err)
}

func TestFetch_NotFound(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.Fetch(context.Background(), "NOPE99")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestValidateCode(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeTable(w, http.StatusOK, map[string]any{"exists": r.URL.Path == "/api/tables/AB12CD/exists"})
	})

	ok, err := c.ValidateCode(context.Background(), "AB12CD")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.ValidateCode(context.Background(), "NOPE99")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateCode_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, nil)
	_, err := c.ValidateCode(context.Background(), "AB12CD")
	var readErr *models.StoreReadError
	require.ErrorAs(t, err, &readErr)
	assert.True(t, errors.Unwrap(readErr) != nil)
}
