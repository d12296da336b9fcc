package menu

import "github.com/mpmisha/TindeResturant/internal/models"

// State is the injectable container for the swipe flow: the loaded
// restaurant, the navigation cursor into the ordered sequence, the editing
// scope, and the accumulated selection. All derived values (current dish,
// completion, totals) are recomputed from these fields on demand rather
// than stored, so they cannot drift.
//
// State is not safe for concurrent use; the UI event loop owns it.
type State struct {
	restaurant  *models.Restaurant
	cursor      int
	scope       Scope
	selection   []models.Dish
	showSummary bool
}

// NewState returns an empty State with no restaurant loaded.
func NewState() *State {
	return &State{}
}

// SetRestaurant switches the active catalog and resets the cursor,
// selection, scope, and summary visibility.
func (s *State) SetRestaurant(r *models.Restaurant) {
	s.restaurant = r
	s.cursor = 0
	s.scope = NoScope
	s.selection = nil
	s.showSummary = false
}

// Restaurant returns the active catalog, which may be nil.
func (s *State) Restaurant() *models.Restaurant { return s.restaurant }

// Ordered returns the current ordered, scope-filtered sequence.
func (s *State) Ordered() []models.Dish {
	return Ordered(s.restaurant, s.scope)
}

// Current returns the dish under the cursor, or nil when the sequence is
// exhausted.
func (s *State) Current() *models.Dish {
	dishes := s.Ordered()
	if s.cursor < 0 || s.cursor >= len(dishes) {
		return nil
	}
	d := dishes[s.cursor]
	return &d
}

// Cursor returns the navigation cursor.
func (s *State) Cursor() int { return s.cursor }

// Complete reports whether every dish in the current sequence has been
// swiped. Completion is derived, never stored.
func (s *State) Complete() bool {
	return s.cursor >= len(s.Ordered())
}

// Remaining returns the number of dishes left to swipe.
func (s *State) Remaining() int {
	if n := len(s.Ordered()) - s.cursor; n > 0 {
		return n
	}
	return 0
}

// Accept records the current dish into the selection and advances the
// cursor. It is a no-op once the sequence is exhausted.
func (s *State) Accept() {
	d := s.Current()
	if d == nil {
		return
	}
	s.selection = append(s.selection, *d)
	s.advance()
}

// Reject advances the cursor without touching the selection.
func (s *State) Reject() {
	if s.Current() == nil {
		return
	}
	s.advance()
}

func (s *State) advance() {
	s.cursor++
	// Exhausting a scoped pass drops back to the summary view.
	if s.scope.Active() && s.Complete() {
		s.scope = NoScope
		s.cursor = len(s.Ordered())
		s.showSummary = true
	}
}

// Selection returns a snapshot of the accumulated picks in acceptance
// order. Re-editing a category appends; nothing is deduplicated.
func (s *State) Selection() []models.Dish {
	out := make([]models.Dish, len(s.selection))
	copy(out, s.selection)
	return out
}

// SelectedIDs returns the distinct dish IDs in the selection, in first
// acceptance order. This is the payload pushed to a shared table.
func (s *State) SelectedIDs() []int {
	seen := map[int]bool{}
	var ids []int
	for _, d := range s.selection {
		if !seen[d.ID] {
			seen[d.ID] = true
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// Contains reports whether the selection holds a dish with the given ID.
func (s *State) Contains(dishID int) bool {
	for _, d := range s.selection {
		if d.ID == dishID {
			return true
		}
	}
	return false
}

// Remove drops exactly one occurrence matching the dish ID and category at
// the given position among same-category entries. A missing match is a
// silent no-op.
func (s *State) Remove(dishID int, category models.Category, occurrence int) {
	n := 0
	for i, d := range s.selection {
		if d.Category != category {
			continue
		}
		if d.ID == dishID {
			if n == occurrence {
				s.selection = append(s.selection[:i], s.selection[i+1:]...)
				return
			}
			n++
		} else {
			// Position counts every same-category entry, matching the
			// summary view's per-category indexing.
			n++
		}
	}
}

// Total returns the personal total: the sum of prices over the selection.
func (s *State) Total() float64 {
	var total float64
	for _, d := range s.selection {
		total += d.Price
	}
	return total
}

// EditCategory restricts the sequence to one category and restarts the
// cursor so the user can swipe that category again.
func (s *State) EditCategory(c models.Category) {
	s.scope = ScopeFor(c)
	s.cursor = 0
	s.showSummary = false
}

// Scope returns the active editing scope.
func (s *State) Scope() Scope { return s.scope }

// ShowSummary reports whether the summary view is visible.
func (s *State) ShowSummary() bool { return s.showSummary }

// SetShowSummary toggles the summary view.
func (s *State) SetShowSummary(v bool) { s.showSummary = v }
