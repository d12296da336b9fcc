package catalog

import (
	"errors"
	"testing"

	"github.com/mpmisha/TindeResturant/internal/models"
)

func TestLoad_KnownRestaurants(t *testing.T) {
	for _, id := range []string{"bella-vista", "sakura-sushi", "local-bistro"} {
		r, err := Load(id)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", id, err)
		}
		if r.ID != id {
			t.Errorf("Load(%q).ID = %q", id, r.ID)
		}
		if len(r.Dishes) == 0 {
			t.Errorf("Load(%q) has no dishes", id)
		}

		seen := map[int]bool{}
		for _, d := range r.Dishes {
			if seen[d.ID] {
				t.Errorf("%s: duplicate dish id %d", id, d.ID)
			}
			seen[d.ID] = true
			if d.Price < 0 {
				t.Errorf("%s: dish %d has negative price", id, d.ID)
			}
		}
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("no-such-place")
	if !errors.Is(err, models.ErrCatalogNotFound) {
		t.Fatalf("Load error = %v; want ErrCatalogNotFound", err)
	}
}

func TestIDs_SortedAndDefault(t *testing.T) {
	ids := IDs()
	if len(ids) != 3 {
		t.Fatalf("IDs() = %v; want 3 entries", ids)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("IDs() not sorted: %v", ids)
		}
	}
	if got := DefaultID(); got != ids[0] {
		t.Errorf("DefaultID() = %q; want %q", got, ids[0])
	}
}

func TestImageURL(t *testing.T) {
	if got := ImageURL("tiramisu.jpg", "bella-vista"); got != "/images/dishes/bella-vista/tiramisu.jpg" {
		t.Errorf("ImageURL = %q", got)
	}
	if got := ImageURL("", "bella-vista"); got != PlaceholderImage {
		t.Errorf("empty path: ImageURL = %q; want placeholder", got)
	}
	if got := ImageURL("   ", "bella-vista"); got != PlaceholderImage {
		t.Errorf("blank path: ImageURL = %q; want placeholder", got)
	}
	if got := ImageURL("tiramisu.jpg", ""); got != PlaceholderImage {
		t.Errorf("no restaurant: ImageURL = %q; want placeholder", got)
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{12.5, "$12.50"},
		{0, "$0.00"},
		{9, "$9.00"},
		{3.456, "$3.46"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.price); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q; want %q", tt.price, got, tt.want)
		}
	}
}
