package booking

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect.  Endpoints that merely touch do not overlap, so a booking
// ending at 20:00 leaves the 20:00 slot free.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// TableAvailability annotates a table with a free/busy flag for a
// specific window.  It is a derived view, recomputed on every request
// and never persisted.
type TableAvailability struct {
	model.Table
	Available bool `json:"available"`
	// FilteredMenu carries the menu items servable at the requested
	// instant when the caller asked for menu filtering; nil otherwise.
	FilteredMenu []model.MenuItem `json:"filtered_food_menu,omitempty"`
}

// Snapshot derives the availability of every table for the 2-hour slot
// starting at the given instant.  It first sweeps expired bookings to
// completed (lazy expiry, no background timer), then loads all tables
// and all active bookings intersecting the window in one pass and
// marks each table busy when any such booking references it.
func (s *Service) Snapshot(ctx context.Context, at time.Time) ([]TableAvailability, error) {
	if n, err := s.bookings.MarkExpiredCompleted(ctx, s.now()); err != nil {
		return nil, err
	} else if n > 0 {
		log.Printf("availability: swept %d expired bookings to completed", n)
	}

	end := at.Add(s.duration)
	tables, err := s.tables.FindTables(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.bookings.ActiveOverlapping(ctx, at, end)
	if err != nil {
		return nil, err
	}
	busy := make(map[uint64]struct{}, len(active))
	for _, b := range active {
		busy[b.TableID] = struct{}{}
	}
	out := make([]TableAvailability, 0, len(tables))
	for _, t := range tables {
		_, taken := busy[t.ID]
		out = append(out, TableAvailability{Table: t, Available: !taken})
	}
	return out, nil
}
