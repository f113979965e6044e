package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 6, 15, 18, 0, 0, 0, time.UTC)
	h := func(n int) time.Time { return base.Add(time.Duration(n) * time.Hour) }

	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", h(0), h(2), h(0), h(2), true},
		{"partial overlap", h(0), h(2), h(1), h(3), true},
		{"contained", h(0), h(4), h(1), h(2), true},
		{"disjoint", h(0), h(2), h(3), h(5), false},
		{"touching end to start", h(0), h(2), h(2), h(4), false},
		{"touching start to end", h(2), h(4), h(0), h(2), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			assert.Equal(t, tc.want, Overlaps(tc.s2, tc.e2, tc.s1, tc.e1), "overlap is symmetric")
		})
	}
}

func TestSnapshotMarksBusyTables(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	start := testNow.Add(24 * time.Hour)
	_, err := svc.Create(ctx, cust(7), 1, &start, nil)
	require.NoError(t, err)

	// window overlapping the booking
	snap, err := svc.Snapshot(ctx, start.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, snap, 2)
	for _, ta := range snap {
		if ta.ID == 1 {
			assert.False(t, ta.Available)
		} else {
			assert.True(t, ta.Available)
		}
	}

	// window after the booking ends
	snap, err = svc.Snapshot(ctx, start.Add(2*time.Hour))
	require.NoError(t, err)
	for _, ta := range snap {
		assert.True(t, ta.Available, "table %d should be free once the booking ended", ta.ID)
	}
}

func TestSnapshotSweepsExpiredBookings(t *testing.T) {
	svc, _, store, _ := newTestService()
	ctx := context.Background()

	// a booking that ended before "now"
	past := testNow.Add(-4 * time.Hour)
	store.bookings[1] = &model.Booking{
		ID: 1, UserID: 7, TableID: 1,
		StartTime: past, EndTime: past.Add(2 * time.Hour),
		Status: model.StatusBooked,
	}
	store.nextID = 2

	snap, err := svc.Snapshot(ctx, testNow)
	require.NoError(t, err)

	assert.Equal(t, int64(1), store.swept)
	assert.Equal(t, model.StatusCompleted, store.bookings[1].Status)
	for _, ta := range snap {
		assert.True(t, ta.Available, "a completed booking holds no slot")
	}
}
