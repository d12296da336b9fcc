package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mpmisha/TindeResturant/internal/models"
)

// Subscription is a handle to one table's snapshot stream. C delivers a
// fresh snapshot after every successful mutation; slow consumers miss
// intermediate snapshots rather than block the hub, which matches the
// "most recent write observed" delivery contract.
type Subscription struct {
	ID   uuid.UUID
	Code string
	C    <-chan *models.TableData

	ch chan *models.TableData
}

// Hub fans table snapshots out to subscribers. Multiple subscriptions per
// table are allowed and not deduplicated.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[uuid.UUID]*Subscription
	closed bool
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: map[string]map[uuid.UUID]*Subscription{}}
}

// Subscribe registers a snapshot stream for the given table code.
func (h *Hub) Subscribe(code string) *Subscription {
	ch := make(chan *models.TableData, 1)
	sub := &Subscription{ID: uuid.New(), Code: code, C: ch, ch: ch}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return sub
	}
	if h.subs[code] == nil {
		h.subs[code] = map[uuid.UUID]*Subscription{}
	}
	h.subs[code][sub.ID] = sub
	return sub
}

// Unsubscribe stops delivery and closes the subscription's channel.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.subs[sub.Code]; ok {
		if _, ok := m[sub.ID]; ok {
			delete(m, sub.ID)
			close(sub.ch)
		}
		if len(m) == 0 {
			delete(h.subs, sub.Code)
		}
	}
}

// Broadcast delivers a snapshot to every subscriber of the table. A full
// buffer is drained first so the subscriber always sees the newest state.
func (h *Hub) Broadcast(code string, snap *models.TableData) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs[code] {
		select {
		case sub.ch <- snap:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- snap:
			default:
			}
		}
	}
}

// Close tears down every subscription, typically on server shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for code, m := range h.subs {
		for id, sub := range m {
			close(sub.ch)
			delete(m, id)
		}
		delete(h.subs, code)
	}
}
