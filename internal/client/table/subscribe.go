package table

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mpmisha/TindeResturant/internal/models"
)

// Subscription is a live push stream of table snapshots. It is tagged with
// the table code active at subscribe time; consumers use the tag to drop
// deliveries that outlive their session.
type Subscription struct {
	// Code is the table code this subscription was opened for.
	Code string

	conn *websocket.Conn
	once sync.Once
}

// Subscribe opens a WebSocket to the table's snapshot stream and invokes
// onUpdate for every delivered snapshot until the subscription is closed
// or the connection drops. Multiple subscriptions to the same code are
// allowed and not deduplicated.
func (c *Client) Subscribe(ctx context.Context, code string, onUpdate func(code string, snap *models.TableData)) (*Subscription, error) {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/api/tables/" + code + "/ws"

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == 404 {
			return nil, models.ErrSessionNotFound
		}
		return nil, &models.StoreReadError{Op: "subscribe", Err: fmt.Errorf("dial %s: %w", wsURL, err)}
	}

	sub := &Subscription{Code: code, conn: conn}

	go func() {
		defer sub.Unsubscribe()
		for {
			var env tableEnvelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			if env.Table == nil {
				continue
			}
			onUpdate(code, env.Table)
		}
	}()

	return sub, nil
}

// Unsubscribe stops delivery. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() { _ = s.conn.Close() })
}
