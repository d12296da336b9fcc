package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpmisha/TindeResturant/internal/models"
)

func testRestaurant() *models.Restaurant {
	return &models.Restaurant{
		ID:   "test",
		Name: "Test Kitchen",
		Dishes: []models.Dish{
			{ID: 1, Name: "Pasta", Price: 12, Category: models.MainCourse},
			{ID: 2, Name: "Soup", Price: 6, Category: models.Starter},
			{ID: 3, Name: "Salad", Price: 7, Category: models.Starter},
			{ID: 4, Name: "Wine", Price: 9, Category: models.Drink},
			{ID: 5, Name: "Cake", Price: 5, Category: models.Desert},
		},
	}
}

func TestOrdered_NilRestaurant(t *testing.T) {
	assert.Empty(t, Ordered(nil, NoScope))
}

func TestOrdered_CanonicalPrecedence(t *testing.T) {
	dishes := Ordered(testRestaurant(), NoScope)
	require.Len(t, dishes, 5)

	got := make([]models.Category, 0, len(dishes))
	for _, d := range dishes {
		got = append(got, d.Category)
	}
	assert.Equal(t, []models.Category{
		models.Drink, models.Starter, models.Starter, models.MainCourse, models.Desert,
	}, got)
}

func TestOrdered_StableWithinCategory(t *testing.T) {
	// Two starters declared as id 2 then id 3 must keep that order.
	r := &models.Restaurant{Dishes: []models.Dish{
		{ID: 1, Category: models.MainCourse},
		{ID: 2, Category: models.Starter},
		{ID: 3, Category: models.Starter},
	}}

	dishes := Ordered(r, NoScope)
	require.Len(t, dishes, 3)
	assert.Equal(t, 2, dishes[0].ID)
	assert.Equal(t, 3, dishes[1].ID)
	assert.Equal(t, 1, dishes[2].ID)
}

func TestOrdered_UnknownCategoryTrails(t *testing.T) {
	r := &models.Restaurant{Dishes: []models.Dish{
		{ID: 1, Category: models.Category("Chef's special")},
		{ID: 2, Category: models.Other},
		{ID: 3, Category: models.Drink},
	}}

	dishes := Ordered(r, NoScope)
	require.Len(t, dishes, 3)
	assert.Equal(t, 3, dishes[0].ID)
	assert.Equal(t, 2, dishes[1].ID)
	assert.Equal(t, 1, dishes[2].ID)
}

func TestOrdered_ScopeFiltersExactly(t *testing.T) {
	dishes := Ordered(testRestaurant(), ScopeFor(models.Drink))
	require.Len(t, dishes, 1)
	assert.Equal(t, "Wine", dishes[0].Name)
}

func TestCategories_CanonicalOrder(t *testing.T) {
	cats := Categories([]models.Dish{
		{Category: models.Desert},
		{Category: models.Starter},
		{Category: models.Desert},
		{Category: models.Drink},
	})
	assert.Equal(t, []models.Category{models.Drink, models.Starter, models.Desert}, cats)
}
