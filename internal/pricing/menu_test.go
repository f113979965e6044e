package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

func TestMenuItemAvailableAt(t *testing.T) {
	// 2026-06-15 is a Monday.
	monday19 := ts("2026-06-15T19:00:00Z")

	t.Run("switched off", func(t *testing.T) {
		item := model.MenuItem{Name: "soup", IsAvailable: false}
		assert.False(t, MenuItemAvailableAt(item, monday19))
	})

	t.Run("no restrictions means always", func(t *testing.T) {
		item := model.MenuItem{Name: "soup", IsAvailable: true}
		assert.True(t, MenuItemAvailableAt(item, monday19))
	})

	t.Run("weekday filter", func(t *testing.T) {
		item := model.MenuItem{
			Name:          "sunday roast",
			IsAvailable:   true,
			AvailableDays: []int{0}, // Sunday only
		}
		assert.False(t, MenuItemAvailableAt(item, monday19))
		sunday := ts("2026-06-14T19:00:00Z")
		assert.True(t, MenuItemAvailableAt(item, sunday))
	})

	t.Run("daily window", func(t *testing.T) {
		item := model.MenuItem{
			Name:           "lunch special",
			IsAvailable:    true,
			AvailableTimes: []model.TimeRange{{From: "12:00", To: "15:00"}},
		}
		assert.True(t, MenuItemAvailableAt(item, ts("2026-06-15T12:00:00Z")), "window start is inclusive")
		assert.True(t, MenuItemAvailableAt(item, ts("2026-06-15T14:59:00Z")))
		assert.False(t, MenuItemAvailableAt(item, ts("2026-06-15T15:00:00Z")), "window end is exclusive")
		assert.False(t, MenuItemAvailableAt(item, monday19))
	})

	t.Run("window crossing midnight", func(t *testing.T) {
		item := model.MenuItem{
			Name:           "late night ramen",
			IsAvailable:    true,
			AvailableTimes: []model.TimeRange{{From: "22:00", To: "02:00"}},
		}
		assert.True(t, MenuItemAvailableAt(item, ts("2026-06-15T23:30:00Z")))
		assert.True(t, MenuItemAvailableAt(item, ts("2026-06-15T01:00:00Z")))
		assert.False(t, MenuItemAvailableAt(item, ts("2026-06-15T02:00:00Z")))
		assert.False(t, MenuItemAvailableAt(item, ts("2026-06-15T12:00:00Z")))
	})

	t.Run("malformed window is skipped", func(t *testing.T) {
		item := model.MenuItem{
			Name:        "typo dish",
			IsAvailable: true,
			AvailableTimes: []model.TimeRange{
				{From: "25:00", To: "zz"},
				{From: "18:00", To: "21:00"},
			},
		}
		assert.True(t, MenuItemAvailableAt(item, monday19))
	})
}

func TestFilterMenu(t *testing.T) {
	at := ts("2026-06-15T19:00:00Z")
	menu := []model.MenuItem{
		{Name: "paneer", Veg: true, IsAvailable: true},
		{Name: "chicken", Veg: false, IsAvailable: true},
		{Name: "off-menu", Veg: true, IsAvailable: false},
		{Name: "lunch only", Veg: false, IsAvailable: true,
			AvailableTimes: []model.TimeRange{{From: "12:00", To: "15:00"}}},
	}

	all := FilterMenu(menu, nil, at)
	require.Len(t, all, 2)
	assert.Equal(t, "paneer", all[0].Name)
	assert.Equal(t, "chicken", all[1].Name)

	veg := true
	onlyVeg := FilterMenu(menu, &veg, at)
	require.Len(t, onlyVeg, 1)
	assert.Equal(t, "paneer", onlyVeg[0].Name)

	nonVeg := false
	meat := FilterMenu(menu, &nonVeg, at)
	require.Len(t, meat, 1)
	assert.Equal(t, "chicken", meat[0].Name)
}
