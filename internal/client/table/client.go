// Package table implements the client side of the table session store:
// create, join, selection push, code validation, and the push-based
// snapshot subscription.
package table

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mpmisha/TindeResturant/internal/models"
)

// Client talks to the table session service over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient builds a Client for the given base URL, e.g.
// "http://localhost:8080". A nil httpClient falls back to
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

type tableEnvelope struct {
	Code   string            `json:"code"`
	UserID string            `json:"userId"`
	Table  *models.TableData `json:"table"`
	Exists bool              `json:"exists"`
}

// CreateSession starts a new table and returns its code and the creator's
// user ID.
func (c *Client) CreateSession(ctx context.Context, restaurantID, name string) (string, string, *models.TableData, error) {
	body := map[string]string{"restaurantId": restaurantID, "name": name}
	env, err := c.do(ctx, http.MethodPost, "/api/tables", body, http.StatusCreated)
	if err != nil {
		return "", "", nil, &models.StoreWriteError{Op: "create session", Err: err}
	}
	return env.Code, env.UserID, env.Table, nil
}

// JoinSession probes the code first so an unknown table surfaces as
// ErrSessionNotFound before any write, then joins.
func (c *Client) JoinSession(ctx context.Context, code, name string) (string, *models.TableData, error) {
	ok, err := c.ValidateCode(ctx, code)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, models.ErrSessionNotFound
	}

	body := map[string]string{"name": name}
	env, err := c.do(ctx, http.MethodPost, "/api/tables/"+code+"/join", body, http.StatusOK)
	if err == errNotFound {
		return "", nil, models.ErrSessionNotFound
	}
	if err != nil {
		return "", nil, &models.StoreWriteError{Op: "join session", Err: err}
	}
	return env.UserID, env.Table, nil
}

// PushSelections sends the user's distinct selected dish IDs. The server
// merges them into the user's own list; nothing of other users is written.
func (c *Client) PushSelections(ctx context.Context, code, userID string, dishIDs []int) (*models.TableData, error) {
	if dishIDs == nil {
		dishIDs = []int{}
	}
	body := map[string][]int{"dishIds": dishIDs}
	path := "/api/tables/" + code + "/users/" + userID + "/selections"
	env, err := c.do(ctx, http.MethodPut, path, body, http.StatusOK)
	if err == errNotFound {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, &models.StoreWriteError{Op: "push selections", Err: err}
	}
	return env.Table, nil
}

// Fetch performs a one-shot snapshot refresh.
func (c *Client) Fetch(ctx context.Context, code string) (*models.TableData, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/tables/"+code, nil, http.StatusOK)
	if err == errNotFound {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, &models.StoreReadError{Op: "fetch", Err: err}
	}
	return env.Table, nil
}

// ValidateCode checks that a table code exists. Existence only, no
// authorization.
func (c *Client) ValidateCode(ctx context.Context, code string) (bool, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/tables/"+code+"/exists", nil, http.StatusOK)
	if err != nil {
		return false, &models.StoreReadError{Op: "validate code", Err: err}
	}
	return env.Exists, nil
}

var errNotFound = fmt.Errorf("not found")

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int) (*tableEnvelope, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != wantStatus {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var env tableEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &env, nil
}
