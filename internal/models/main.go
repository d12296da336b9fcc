// Package models defines the core data structures for restaurants, dishes,
// and shared table sessions.
package models

import "errors"

// Category is the closed set of dish categories a catalog may use.
type Category string

const (
	// Drink covers beverages of any kind.
	Drink Category = "Drink"
	// Starter covers appetizers served before the main course.
	Starter Category = "Starter"
	// MainCourse covers the principal dishes of a meal.
	MainCourse Category = "Main course"
	// Desert covers sweet courses. The catalog format spells it this way.
	Desert Category = "Desert"
	// Other covers anything that does not fit the categories above.
	Other Category = "Other"
)

// Dish is an immutable catalog entry. Dishes are created at catalog load
// time and never mutated afterwards.
type Dish struct {
	// ID is unique within a single restaurant's catalog.
	ID int `json:"id" firestore:"id"`
	// Name is the display name of the dish.
	Name string `json:"name" firestore:"name"`
	// ShortDescription is shown on the card face.
	ShortDescription string `json:"shortDescription" firestore:"shortDescription"`
	// FullDescription is shown when the card is expanded.
	FullDescription string `json:"fullDescription" firestore:"fullDescription"`
	// Price is a non-negative amount with two-place currency semantics.
	Price float64 `json:"price" firestore:"price"`
	// Category is one of the Category constants.
	Category Category `json:"category" firestore:"category"`
	// Image is a path relative to the restaurant's image directory.
	Image string `json:"image" firestore:"image"`
}

// Restaurant is a loaded catalog: identity, contact info, and dishes.
// Dish IDs are unique within Dishes.
type Restaurant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	PhoneNumber string `json:"phoneNumber"`
	Dishes      []Dish `json:"dishes"`
}

// User is a table member. IDs are client-random and not guaranteed globally
// unique; the collision probability is accepted as negligible.
type User struct {
	ID string `json:"id" firestore:"id"`
	// Name defaults to "User N" by join order when the user leaves it blank.
	Name string `json:"name" firestore:"name"`
	// Color is a hex color assigned from the palette by join ordinal.
	Color string `json:"color" firestore:"color"`
}

// TableData is the shared session record, keyed by a short table code.
// Selections maps a dish ID (as a string) to the IDs of every user who
// selected it. Clients hold read replicas refreshed by push updates.
type TableData struct {
	Users        map[string]User     `json:"users"`
	Selections   map[string][]string `json:"selections"`
	RestaurantID string              `json:"restaurantId"`
}

// MemberCount returns the number of users at the table.
func (t *TableData) MemberCount() int {
	if t == nil {
		return 0
	}
	return len(t.Users)
}

// Error taxonomy. All remote failures are recoverable by retrying the
// operation; none are process-fatal.
var (
	// ErrCatalogNotFound is returned when a restaurant ID has no catalog entry.
	ErrCatalogNotFound = errors.New("restaurant catalog not found")
	// ErrSessionNotFound is returned when a table code does not exist.
	ErrSessionNotFound = errors.New("table session not found")
)

// StoreWriteError wraps a failed remote write (create, join, push).
type StoreWriteError struct {
	Op  string
	Err error
}

func (e *StoreWriteError) Error() string { return "store write failed: " + e.Op + ": " + e.Err.Error() }

func (e *StoreWriteError) Unwrap() error { return e.Err }

// StoreReadError wraps a failed remote read (snapshot, existence probe).
type StoreReadError struct {
	Op  string
	Err error
}

func (e *StoreReadError) Error() string { return "store read failed: " + e.Op + ": " + e.Err.Error() }

func (e *StoreReadError) Unwrap() error { return e.Err }
