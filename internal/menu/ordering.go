// Package menu implements the selection pipeline: deriving the ordered,
// filterable dish sequence, accumulating swipe decisions, and merging
// local and shared-table selections into a summary.
package menu

import (
	"sort"

	"github.com/mpmisha/TindeResturant/internal/models"
)

// CategoryOrder is the canonical presentation precedence. It is used both
// for the swipe sequence and for summary grouping; categories outside the
// list sort after all listed ones.
var CategoryOrder = []models.Category{
	models.Drink,
	models.Starter,
	models.MainCourse,
	models.Desert,
	models.Other,
}

// Scope restricts the sequence to a single category. The zero value
// (NoScope) leaves the full catalog in place.
type Scope struct {
	Category models.Category
	active   bool
}

// NoScope is the unrestricted editing scope.
var NoScope = Scope{}

// ScopeFor returns a scope restricted to the given category.
func ScopeFor(c models.Category) Scope {
	return Scope{Category: c, active: true}
}

// Active reports whether the scope restricts to a category.
func (s Scope) Active() bool { return s.active }

func categoryIndex(c models.Category) int {
	for i, v := range CategoryOrder {
		if v == c {
			return i
		}
	}
	return len(CategoryOrder)
}

// Ordered derives the presentation sequence from a restaurant and scope.
// A nil restaurant yields an empty sequence. The sort is stable: dishes
// within the same category keep their original relative order.
func Ordered(r *models.Restaurant, scope Scope) []models.Dish {
	if r == nil {
		return nil
	}

	dishes := make([]models.Dish, 0, len(r.Dishes))
	for _, d := range r.Dishes {
		if scope.Active() && d.Category != scope.Category {
			continue
		}
		dishes = append(dishes, d)
	}

	sort.SliceStable(dishes, func(i, j int) bool {
		return categoryIndex(dishes[i].Category) < categoryIndex(dishes[j].Category)
	})
	return dishes
}

// Categories returns the distinct categories present in the selection, in
// canonical order. Used by the summary view to offer per-category re-edit.
func Categories(dishes []models.Dish) []models.Category {
	seen := map[models.Category]bool{}
	for _, d := range dishes {
		seen[d.Category] = true
	}

	out := make([]models.Category, 0, len(seen))
	for _, c := range CategoryOrder {
		if seen[c] {
			out = append(out, c)
			delete(seen, c)
		}
	}
	// Unknown categories trail the canonical list.
	for _, d := range dishes {
		if seen[d.Category] {
			out = append(out, d.Category)
			delete(seen, d.Category)
		}
	}
	return out
}
