package booking

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/pricing"
)

// DefaultDuration is the length of one booking slot.  Every booking
// spans exactly one slot; only the start time is chosen by the caller.
const DefaultDuration = 2 * time.Hour

// Service orchestrates the booking lifecycle.  All mutations go
// through the BookingStore, which owns the double-booking guard, and
// every state change fires a detached notification that can never fail
// the request.
type Service struct {
	tables   TableStore
	bookings BookingStore
	notifier Notifier
	duration time.Duration
	now      func() time.Time
}

// NewService wires a Service.  A non-positive duration falls back to
// DefaultDuration.
func NewService(tables TableStore, bookings BookingStore, notifier Notifier, duration time.Duration) *Service {
	if tables == nil || bookings == nil || notifier == nil {
		panic("nil dependency passed to booking.NewService")
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Service{
		tables:   tables,
		bookings: bookings,
		notifier: notifier,
		duration: duration,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateResult is returned by Create: the new booking plus a fresh
// availability snapshot at its start time, so the caller can refresh a
// calendar view without a second round trip.
type CreateResult struct {
	Booking model.Booking       `json:"booking"`
	Tables  []TableAvailability `json:"tables"`
}

// Create books the table for the requester.  Start defaults to now and
// end to start plus one slot.  Pricing is fixed from the table's
// offers at the start instant.  The store rejects the insert with
// ErrSlotTaken when an active booking overlaps the interval.
func (s *Service) Create(ctx context.Context, p Principal, tableID uint64, start, end *time.Time) (CreateResult, error) {
	if tableID == 0 {
		return CreateResult{}, ErrInvalidInput
	}
	table, err := s.tables.FindTable(ctx, tableID)
	if err != nil {
		return CreateResult{}, err
	}

	from := s.now()
	if start != nil {
		from = start.UTC()
	}
	to := from.Add(s.duration)
	if end != nil {
		to = end.UTC()
	}
	if !from.Before(to) {
		return CreateResult{}, ErrInvalidRange
	}

	q := pricing.QuoteAt(&table, from)
	b := model.Booking{
		UserID:        p.UserID,
		UserEmail:     p.Email,
		TableID:       table.ID,
		StartTime:     from,
		EndTime:       to,
		Status:        model.StatusBooked,
		Price:         q.Price,
		Discount:      q.Discount,
		FinalPrice:    q.FinalPrice,
		AppliedOffers: q.AppliedOffers,
	}
	if err := s.bookings.Create(ctx, &b); err != nil {
		return CreateResult{}, err
	}
	b.Table = &table

	tables, err := s.Snapshot(ctx, b.StartTime)
	if err != nil {
		return CreateResult{}, err
	}

	s.notifier.BookingCreated(b, p.Email)
	return CreateResult{Booking: b, Tables: tables}, nil
}

// Update moves an existing booking to a new start time.  Only the
// owner or an admin may do this.  Conflicts are checked against every
// OTHER active booking on the same table, so keeping the original slot
// always succeeds.  Pricing is recomputed at the new start, since a
// different set of offers may apply there.
func (s *Service) Update(ctx context.Context, p Principal, bookingID uint64, newStart time.Time) (model.Booking, error) {
	if bookingID == 0 || newStart.IsZero() {
		return model.Booking{}, ErrInvalidInput
	}
	b, err := s.bookings.FindBooking(ctx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	if b.UserID != p.UserID && !p.Admin() {
		return model.Booking{}, ErrForbidden
	}

	from := newStart.UTC()
	to := from.Add(s.duration)
	if !from.Before(to) {
		return model.Booking{}, ErrInvalidRange
	}

	oldStart := b.StartTime
	q := pricing.QuoteAt(b.Table, from)
	b.StartTime = from
	b.EndTime = to
	b.Price = q.Price
	b.Discount = q.Discount
	b.FinalPrice = q.FinalPrice
	b.AppliedOffers = q.AppliedOffers
	if err := s.bookings.Reschedule(ctx, &b); err != nil {
		return model.Booking{}, err
	}

	s.notifier.BookingUpdated(b, recipient(b, p), oldStart)
	return b, nil
}

// CancelResult is returned by Cancel: the cancelled booking plus the
// refreshed availability snapshot at its original start time.
type CancelResult struct {
	Booking model.Booking       `json:"booking"`
	Tables  []TableAvailability `json:"tables"`
}

// Cancel transitions a booking to cancelled.  Only the owner may
// cancel; unlike Update there is no admin override.  Cancelling an
// already-cancelled booking is a no-op that skips the status write and
// the notification but still returns a fresh snapshot.
func (s *Service) Cancel(ctx context.Context, p Principal, bookingID uint64) (CancelResult, error) {
	if bookingID == 0 {
		return CancelResult{}, ErrInvalidInput
	}
	b, err := s.bookings.FindBooking(ctx, bookingID)
	if err != nil {
		return CancelResult{}, err
	}
	if b.UserID != p.UserID {
		return CancelResult{}, ErrForbidden
	}

	alreadyCancelled := b.Status == model.StatusCancelled
	if !alreadyCancelled {
		if err := s.bookings.SetStatus(ctx, b.ID, model.StatusCancelled); err != nil {
			return CancelResult{}, err
		}
		b.Status = model.StatusCancelled
	}

	tables, err := s.Snapshot(ctx, b.StartTime)
	if err != nil {
		return CancelResult{}, err
	}

	if !alreadyCancelled {
		s.notifier.BookingCancelled(b, recipient(b, p))
	}
	return CancelResult{Booking: b, Tables: tables}, nil
}

// UserBookings lists all bookings owned by the user, newest start
// first, with their tables resolved.
func (s *Service) UserBookings(ctx context.Context, userID uint64) ([]model.Booking, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.bookings.ListByUser(ctx, userID)
}

// recipient prefers the booking owner's email over the requester's, so
// an admin rescheduling someone's booking notifies the right person.
func recipient(b model.Booking, p Principal) string {
	if b.UserEmail != "" {
		return b.UserEmail
	}
	return p.Email
}
