// Package catalog resolves restaurant identifiers to static in-memory
// dish catalogs compiled into the binary.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mpmisha/TindeResturant/internal/models"
)

//go:embed data/*.json
var dataFS embed.FS

// PlaceholderImage is served when a dish has no image or its image fails
// to load.
const PlaceholderImage = "/images/placeholders/dish-placeholder.jpg"

var restaurants = map[string]*models.Restaurant{}

func init() {
	entries, err := dataFS.ReadDir("data")
	if err != nil {
		panic(fmt.Sprintf("catalog: read embedded data: %v", err))
	}
	for _, e := range entries {
		raw, err := dataFS.ReadFile("data/" + e.Name())
		if err != nil {
			panic(fmt.Sprintf("catalog: read %s: %v", e.Name(), err))
		}
		var r models.Restaurant
		if err := json.Unmarshal(raw, &r); err != nil {
			panic(fmt.Sprintf("catalog: parse %s: %v", e.Name(), err))
		}
		restaurants[r.ID] = &r
	}
}

// Load returns the catalog for the given restaurant ID, or
// models.ErrCatalogNotFound when the ID is unknown. The returned value is
// shared and must be treated as read-only.
func Load(id string) (*models.Restaurant, error) {
	r, ok := restaurants[id]
	if !ok {
		return nil, fmt.Errorf("restaurant %q: %w", id, models.ErrCatalogNotFound)
	}
	return r, nil
}

// IDs returns the known restaurant identifiers in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(restaurants))
	for id := range restaurants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultID is the restaurant used when a route names no (or an unknown)
// restaurant.
func DefaultID() string {
	ids := IDs()
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// ImageURL resolves a dish image path to its public URL, falling back to
// the placeholder when the path or restaurant ID is empty.
func ImageURL(imagePath, restaurantID string) string {
	if strings.TrimSpace(imagePath) == "" || restaurantID == "" {
		return PlaceholderImage
	}
	return "/images/dishes/" + restaurantID + "/" + imagePath
}

// FormatPrice renders a price with two-place currency semantics,
// e.g. FormatPrice(12.5) == "$12.50".
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}
