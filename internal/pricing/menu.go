package pricing

import (
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// MenuItemAvailableAt reports whether a menu item can be served at the
// given instant.  The item must be switched on, the instant's weekday
// must be allowed (an empty day list allows every day), and the time
// of day must fall inside one of the item's windows (no windows means
// all day).  Windows whose end is not after their start cross
// midnight, e.g. 22:00–02:00.
func MenuItemAvailableAt(item model.MenuItem, at time.Time) bool {
	if !item.IsAvailable {
		return false
	}
	if len(item.AvailableDays) > 0 {
		dow := int(at.Weekday())
		found := false
		for _, d := range item.AvailableDays {
			if d == dow {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(item.AvailableTimes) == 0 {
		return true
	}
	minutes := at.Hour()*60 + at.Minute()
	for _, r := range item.AvailableTimes {
		from, okFrom := parseClock(r.From)
		to, okTo := parseClock(r.To)
		if !okFrom || !okTo {
			continue
		}
		if to > from {
			if minutes >= from && minutes < to {
				return true
			}
		} else if minutes >= from || minutes < to {
			return true
		}
	}
	return false
}

// FilterMenu returns the menu items servable at the given instant,
// optionally restricted by the veg flag.  veg is a tri-state: nil
// keeps everything, otherwise only items whose Veg matches.
func FilterMenu(menu []model.MenuItem, veg *bool, at time.Time) []model.MenuItem {
	out := make([]model.MenuItem, 0, len(menu))
	for _, m := range menu {
		if veg != nil && m.Veg != *veg {
			continue
		}
		if !MenuItemAvailableAt(m, at) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
