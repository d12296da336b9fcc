// Package session holds the client's active table session: who we are,
// which table we joined, and the latest snapshot pushed by the store.
package session

import (
	"sync"

	"github.com/mpmisha/TindeResturant/internal/models"
)

// Mode distinguishes creating a table from joining one.
type Mode string

const (
	// ModeNew means this client created the table.
	ModeNew Mode = "new"
	// ModeJoin means this client joined with an existing code.
	ModeJoin Mode = "join"
)

// Unsubscriber tears down a push subscription. *table.Subscription
// satisfies it.
type Unsubscriber interface {
	Unsubscribe()
}

// Session is the client-side session container. Snapshot deliveries are
// applied through Apply, which drops anything tagged with a code that is
// no longer the active session — a late delivery after Clear must not
// resurrect cleared state.
type Session struct {
	mu        sync.Mutex
	mode      Mode
	code      string
	userID    string
	userName  string
	snap      *models.TableData
	connected bool
	sub       Unsubscriber
}

// New returns an empty, disconnected session.
func New() *Session {
	return &Session{}
}

// Set activates a session after a successful create or join.
func (s *Session) Set(mode Mode, code, userID, userName string, snap *models.TableData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	s.code = code
	s.userID = userID
	s.userName = userName
	s.snap = snap
	s.connected = true
}

// Attach records the push subscription so Clear can tear it down. Any
// previous subscription is unsubscribed first; one active subscription
// per session.
func (s *Session) Attach(sub Unsubscriber) {
	s.mu.Lock()
	prev := s.sub
	s.sub = sub
	s.mu.Unlock()
	if prev != nil {
		prev.Unsubscribe()
	}
}

// Clear leaves the table: tears down the subscription and resets all
// session fields. The remote record is left alone.
func (s *Session) Clear() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mode = ""
	s.code = ""
	s.userID = ""
	s.userName = ""
	s.snap = nil
	s.connected = false
	s.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}

// Apply installs a delivered snapshot if the delivery's code still matches
// the active session. It reports whether the snapshot was applied.
func (s *Session) Apply(code string, snap *models.TableData) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected || code != s.code {
		// Stale delivery for a cleared or replaced session.
		return false
	}
	s.snap = snap
	return true
}

// Connected reports whether a table session is active.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Mode returns the session mode ("" when disconnected).
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Code returns the active table code.
func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// UserID returns the local user's table identifier.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// UserName returns the display name used at join time.
func (s *Session) UserName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userName
}

// Snapshot returns the latest applied table snapshot, which may be nil.
func (s *Session) Snapshot() *models.TableData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// CurrentUser returns the local user's record from the latest snapshot.
func (s *Session) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return models.User{}, false
	}
	u, ok := s.snap.Users[s.userID]
	return u, ok
}
