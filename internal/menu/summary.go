package menu

import (
	"sort"
	"strconv"

	"github.com/mpmisha/TindeResturant/internal/models"
)

// SelfContributorID marks the synthetic contributor used when no shared
// table session is active.
const SelfContributorID = "you"

// AggregatedDish is one dish in the summary together with everyone who
// selected it.
type AggregatedDish struct {
	Dish         models.Dish
	Contributors []models.User
	// Removable reports whether the local user personally selected the
	// dish; only those entries offer a remove affordance, and removal is
	// local-only.
	Removable bool
}

// CategoryGroup is the per-category section of the summary.
type CategoryGroup struct {
	Category models.Category
	Dishes   []AggregatedDish
}

// Summary is the merged view of local and table-wide selections.
type Summary struct {
	Groups []CategoryGroup
	// PersonalTotal sums prices over the local selection only.
	PersonalTotal float64
	// GroupTotal sums price x contributor count per aggregated dish; it is
	// zero outside session mode. A dish shared by three users counts three
	// times.
	GroupTotal float64
	// SessionMode reports whether a table snapshot was merged.
	SessionMode bool
}

// Summarize merges the local selection with an optional table snapshot
// into per-dish contributor lists grouped by category.
//
// Without a snapshot every local pick gets a single synthetic "You"
// contributor. With one, the local user's own table record is attached to
// each local pick first, then the remote selections map is overlaid,
// adding contributors by user-id lookup. The overlay is idempotent:
// applying the same snapshot twice yields the same result.
func Summarize(selection []models.Dish, r *models.Restaurant, snap *models.TableData, selfID string) Summary {
	byID := map[int]*AggregatedDish{}
	var order []int

	add := func(d models.Dish, u models.User, removable bool) {
		entry, ok := byID[d.ID]
		if !ok {
			entry = &AggregatedDish{Dish: d}
			byID[d.ID] = entry
			order = append(order, d.ID)
		}
		if removable {
			entry.Removable = true
		}
		for _, c := range entry.Contributors {
			if c.ID == u.ID {
				return
			}
		}
		entry.Contributors = append(entry.Contributors, u)
	}

	self := models.User{ID: SelfContributorID, Name: "You"}
	if snap != nil && selfID != "" {
		if u, ok := snap.Users[selfID]; ok {
			self = u
		} else {
			self.ID = selfID
		}
	}

	// Local picks first so their insertion order wins within a category.
	// Duplicate picks from re-edited categories collapse here; the
	// contributor check keeps the merge idempotent.
	for _, d := range selection {
		add(d, self, true)
	}

	sessionMode := snap != nil
	if sessionMode && r != nil {
		dishes := map[int]models.Dish{}
		for _, d := range r.Dishes {
			dishes[d.ID] = d
		}
		for _, id := range orderedDishIDs(snap.Selections) {
			d, ok := dishes[atoiOr(id, -1)]
			if !ok {
				// Unknown dish ids in the snapshot are skipped.
				continue
			}
			for _, userID := range snap.Selections[id] {
				u, ok := snap.Users[userID]
				if !ok {
					continue
				}
				if userID == selfID {
					u = self
				}
				add(d, u, false)
			}
		}
	}

	sum := Summary{SessionMode: sessionMode}
	for _, d := range selection {
		sum.PersonalTotal += d.Price
	}

	grouped := map[models.Category][]AggregatedDish{}
	var flat []models.Dish
	for _, id := range order {
		entry := byID[id]
		grouped[entry.Dish.Category] = append(grouped[entry.Dish.Category], *entry)
		flat = append(flat, entry.Dish)
		if sessionMode {
			sum.GroupTotal += entry.Dish.Price * float64(len(entry.Contributors))
		}
	}
	for _, c := range Categories(flat) {
		sum.Groups = append(sum.Groups, CategoryGroup{Category: c, Dishes: grouped[c]})
	}
	return sum
}

// orderedDishIDs returns map keys sorted numerically so the overlay is
// deterministic across runs.
func orderedDishIDs(selections map[string][]string) []string {
	ids := make([]string, 0, len(selections))
	for id := range selections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return atoiOr(ids[i], 0) < atoiOr(ids[j], 0)
	})
	return ids
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
