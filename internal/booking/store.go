package booking

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// TableStore provides read access to tables.  Implementations return
// ErrTableNotFound when an id does not resolve.
type TableStore interface {
	// FindTable returns a single table by id.
	FindTable(ctx context.Context, id uint64) (model.Table, error)
	// FindTables returns all tables ordered by table number ascending.
	FindTables(ctx context.Context) ([]model.Table, error)
}

// BookingStore persists bookings.  Create and Reschedule must enforce
// the no-double-booking invariant at the storage layer: the overlap
// check and the write happen under a guard that serializes concurrent
// attempts on the same table, and a conflict surfaces as ErrSlotTaken.
// A pure application-level check-then-act is not an acceptable
// implementation.
type BookingStore interface {
	// FindBooking returns a booking with its table resolved, or
	// ErrBookingNotFound.
	FindBooking(ctx context.Context, id uint64) (model.Booking, error)
	// ActiveOverlapping returns active (status=booked) bookings across
	// all tables intersecting the half-open window [start, end).
	ActiveOverlapping(ctx context.Context, start, end time.Time) ([]model.Booking, error)
	// Create inserts a new booking, failing with ErrSlotTaken when an
	// active booking on the same table overlaps its interval.  The
	// generated id and timestamps are populated on b.
	Create(ctx context.Context, b *model.Booking) error
	// Reschedule persists new times and pricing for an existing
	// booking, failing with ErrSlotTaken when any OTHER active booking
	// on the same table overlaps the new interval.
	Reschedule(ctx context.Context, b *model.Booking) error
	// SetStatus updates only the status of a booking.
	SetStatus(ctx context.Context, id uint64, status string) error
	// ListByUser returns the user's bookings with tables resolved,
	// ordered by start time descending.
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
	// MarkExpiredCompleted transitions every booked booking whose end
	// time is before now to completed and returns the affected count.
	MarkExpiredCompleted(ctx context.Context, now time.Time) (int64, error)
}

// Notifier delivers booking side-channel notifications.  All methods
// are fire-and-forget: they must return immediately, never block the
// request path, and swallow (log) their own failures.
type Notifier interface {
	BookingCreated(b model.Booking, email string)
	BookingUpdated(b model.Booking, email string, oldStart time.Time)
	BookingCancelled(b model.Booking, email string)
}

// Principal identifies the authenticated requester of an operation.
type Principal struct {
	UserID uint64
	Role   string
	Email  string
}

// Admin reports whether the principal holds the admin role.
func (p Principal) Admin() bool { return p.Role == model.RoleAdmin }
