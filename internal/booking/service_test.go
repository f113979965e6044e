package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// ----- in-memory fakes -----

type fakeTableStore struct {
	tables map[uint64]model.Table
}

func (f *fakeTableStore) FindTable(_ context.Context, id uint64) (model.Table, error) {
	t, ok := f.tables[id]
	if !ok {
		return model.Table{}, ErrTableNotFound
	}
	return t, nil
}

func (f *fakeTableStore) FindTables(_ context.Context) ([]model.Table, error) {
	out := make([]model.Table, 0, len(f.tables))
	for _, t := range f.tables {
		out = append(out, t)
	}
	return out, nil
}

type fakeBookingStore struct {
	nextID   uint64
	bookings map[uint64]*model.Booking
	tables   *fakeTableStore
	swept    int64
}

func newFakeBookingStore(tables *fakeTableStore) *fakeBookingStore {
	return &fakeBookingStore{nextID: 1, bookings: map[uint64]*model.Booking{}, tables: tables}
}

// FindBooking resolves the table like the SQL implementation does.
func (f *fakeBookingStore) FindBooking(_ context.Context, id uint64) (model.Booking, error) {
	stored, ok := f.bookings[id]
	if !ok {
		return model.Booking{}, ErrBookingNotFound
	}
	b := *stored
	if t, ok := f.tables.tables[b.TableID]; ok {
		b.Table = &t
	}
	return b, nil
}

func (f *fakeBookingStore) ActiveOverlapping(_ context.Context, start, end time.Time) ([]model.Booking, error) {
	out := make([]model.Booking, 0)
	for _, b := range f.bookings {
		if b.Active() && Overlaps(b.StartTime, b.EndTime, start, end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) conflict(tableID uint64, start, end time.Time, excludeID uint64) bool {
	for _, b := range f.bookings {
		if b.TableID != tableID || !b.Active() || b.ID == excludeID {
			continue
		}
		if Overlaps(b.StartTime, b.EndTime, start, end) {
			return true
		}
	}
	return false
}

func (f *fakeBookingStore) Create(_ context.Context, b *model.Booking) error {
	if f.conflict(b.TableID, b.StartTime, b.EndTime, 0) {
		return ErrSlotTaken
	}
	b.ID = f.nextID
	f.nextID++
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingStore) Reschedule(_ context.Context, b *model.Booking) error {
	if _, ok := f.bookings[b.ID]; !ok {
		return ErrBookingNotFound
	}
	if f.conflict(b.TableID, b.StartTime, b.EndTime, b.ID) {
		return ErrSlotTaken
	}
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingStore) SetStatus(_ context.Context, id uint64, status string) error {
	b, ok := f.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingStore) ListByUser(_ context.Context, userID uint64) ([]model.Booking, error) {
	out := make([]model.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) MarkExpiredCompleted(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.Status == model.StatusBooked && b.EndTime.Before(now) {
			b.Status = model.StatusCompleted
			n++
		}
	}
	f.swept += n
	return n, nil
}

type notifierCall struct {
	kind     string
	email    string
	oldStart time.Time
}

type fakeNotifier struct {
	calls []notifierCall
}

func (f *fakeNotifier) BookingCreated(_ model.Booking, email string) {
	f.calls = append(f.calls, notifierCall{kind: "created", email: email})
}
func (f *fakeNotifier) BookingUpdated(_ model.Booking, email string, oldStart time.Time) {
	f.calls = append(f.calls, notifierCall{kind: "updated", email: email, oldStart: oldStart})
}
func (f *fakeNotifier) BookingCancelled(_ model.Booking, email string) {
	f.calls = append(f.calls, notifierCall{kind: "cancelled", email: email})
}

// ----- harness -----

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *fakeTableStore, *fakeBookingStore, *fakeNotifier) {
	tables := &fakeTableStore{tables: map[uint64]model.Table{
		1: {ID: 1, TableNumber: 1, Seats: 4, IsAvailable: true, Price: 1000,
			Offers: []model.Offer{{Title: "weekday", DiscountPercent: 20, Active: true}}},
		2: {ID: 2, TableNumber: 2, Seats: 2, IsAvailable: true, Price: 500},
	}}
	bookings := newFakeBookingStore(tables)
	notifier := &fakeNotifier{}
	svc := NewService(tables, bookings, notifier, 0)
	svc.now = func() time.Time { return testNow }
	return svc, tables, bookings, notifier
}

func cust(id uint64) Principal {
	return Principal{UserID: id, Role: model.RoleCustomer, Email: "user@example.com"}
}

// ----- tests -----

func TestCreateDefaultsAndPricing(t *testing.T) {
	svc, _, _, notifier := newTestService()

	res, err := svc.Create(context.Background(), cust(7), 1, nil, nil)
	require.NoError(t, err)

	b := res.Booking
	assert.Equal(t, testNow, b.StartTime, "start defaults to now")
	assert.Equal(t, testNow.Add(2*time.Hour), b.EndTime, "end defaults to one slot later")
	assert.Equal(t, model.StatusBooked, b.Status)
	assert.Equal(t, int64(1000), b.Price)
	assert.Equal(t, int64(200), b.Discount)
	assert.Equal(t, int64(800), b.FinalPrice)
	require.Len(t, b.AppliedOffers, 1)
	assert.Equal(t, "weekday", b.AppliedOffers[0].Title)
	require.NotNil(t, b.Table)
	assert.Equal(t, uint64(1), b.Table.ID)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "created", notifier.calls[0].kind)
	assert.Equal(t, "user@example.com", notifier.calls[0].email)

	// the snapshot reflects the booking just made
	for _, ta := range res.Tables {
		if ta.ID == 1 {
			assert.False(t, ta.Available)
		} else {
			assert.True(t, ta.Available)
		}
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, cust(7), 0, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, cust(7), 99, nil, nil)
	assert.ErrorIs(t, err, ErrTableNotFound)

	start := testNow.Add(time.Hour)
	end := testNow // end before start
	_, err = svc.Create(ctx, cust(7), 1, &start, &end)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.Create(ctx, cust(7), 1, &start, &start)
	assert.ErrorIs(t, err, ErrInvalidRange, "zero-length interval is invalid")
}

func TestCreateConflict(t *testing.T) {
	svc, _, _, notifier := newTestService()
	ctx := context.Background()

	start := testNow.Add(24 * time.Hour)
	_, err := svc.Create(ctx, cust(7), 1, &start, nil)
	require.NoError(t, err)

	// overlapping attempt on the same table fails
	again := start.Add(30 * time.Minute)
	_, err = svc.Create(ctx, cust(8), 1, &again, nil)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// same window on another table is fine
	_, err = svc.Create(ctx, cust(8), 2, &start, nil)
	assert.NoError(t, err)

	// only the two successful bookings notified
	assert.Len(t, notifier.calls, 2)
}

func TestCreateTouchingEndpointsDoNotConflict(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	start := testNow.Add(24 * time.Hour)
	_, err := svc.Create(ctx, cust(7), 1, &start, nil)
	require.NoError(t, err)

	// next slot starts exactly when the previous one ends
	next := start.Add(2 * time.Hour)
	_, err = svc.Create(ctx, cust(8), 1, &next, nil)
	assert.NoError(t, err, "a booking ending at T leaves the slot starting at T free")

	prev := start.Add(-2 * time.Hour)
	_, err = svc.Create(ctx, cust(9), 1, &prev, nil)
	assert.NoError(t, err)
}

func TestCreateCancelledBookingDoesNotBlock(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	start := testNow.Add(24 * time.Hour)
	res, err := svc.Create(ctx, cust(7), 1, &start, nil)
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, cust(7), res.Booking.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, cust(8), 1, &start, nil)
	assert.NoError(t, err, "cancelled bookings free their slot")
}

func TestUpdateReschedulesAndReprices(t *testing.T) {
	svc, tables, _, notifier := newTestService()
	ctx := context.Background()

	// the offer only covers the original start
	validTo := testNow.Add(36 * time.Hour)
	tbl := tables.tables[1]
	tbl.Offers = []model.Offer{{Title: "weekday", DiscountPercent: 20, Active: true, ValidTo: &validTo}}
	tables.tables[1] = tbl

	start := testNow.Add(24 * time.Hour)
	res, err := svc.Create(ctx, cust(7), 1, &start, nil)
	require.NoError(t, err)
	require.Equal(t, int64(800), res.Booking.FinalPrice)

	newStart := testNow.Add(48 * time.Hour) // outside the offer window
	b, err := svc.Update(ctx, cust(7), res.Booking.ID, newStart)
	require.NoError(t, err)
	assert.Equal(t, newStart, b.StartTime)
	assert.Equal(t, newStart.Add(2*time.Hour), b.EndTime)
	assert.Equal(t, int64(1000), b.FinalPrice, "no offer applies at the new start")
	assert.Zero(t, b.Discount)
	assert.Empty(t, b.AppliedOffers)

	require.Len(t, notifier.calls, 2)
	assert.Equal(t, "updated", notifier.calls[1].kind)
	assert.Equal(t, start, notifier.calls[1].oldStart)
}

func TestUpdateKeepingOwnSlotSucceeds(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	start := testNow.Add(24 * time.Hour)
	res, err := svc.Create(ctx, cust(7), 1, &start, nil)
	require.NoError(t, err)

	// moving half a slot forward overlaps the booking's own old window
	nudged := start.Add(time.Hour)
	_, err = svc.Update(ctx, cust(7), res.Booking.ID, nudged)
	assert.NoError(t, err, "a booking never conflicts with itself")
}

func TestUpdateConflictWithOtherBooking(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	start := testNow.Add(24 * time.Hour)
	first, err := svc.Create(ctx, cust(7), 1, &start, nil)
	require.NoError(t, err)

	otherStart := start.Add(4 * time.Hour)
	second, err := svc.Create(ctx, cust(8), 1, &otherStart, nil)
	require.NoError(t, err)
	_ = first

	_, err = svc.Update(ctx, cust(8), second.Booking.ID, start.Add(time.Hour))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUpdateAuthorization(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	start := testNow.Add(24 * time.Hour)
	res, err := svc.Create(ctx, cust(7), 1, &start, nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, cust(8), res.Booking.ID, start.Add(time.Hour))
	assert.ErrorIs(t, err, ErrForbidden, "another customer cannot reschedule")

	admin := Principal{UserID: 99, Role: model.RoleAdmin, Email: "admin@example.com"}
	_, err = svc.Update(ctx, admin, res.Booking.ID, start.Add(time.Hour))
	assert.NoError(t, err, "admins may reschedule any booking")
}

func TestCancelOwnerOnly(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	start := testNow.Add(24 * time.Hour)
	res, err := svc.Create(ctx, cust(7), 1, &start, nil)
	require.NoError(t, err)

	// unlike Update there is no admin override for Cancel
	admin := Principal{UserID: 99, Role: model.RoleAdmin, Email: "admin@example.com"}
	_, err = svc.Cancel(ctx, admin, res.Booking.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	out, err := svc.Cancel(ctx, cust(7), res.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, out.Booking.Status)
}

func TestCancelTwiceIsNoOp(t *testing.T) {
	svc, _, _, notifier := newTestService()
	ctx := context.Background()

	start := testNow.Add(24 * time.Hour)
	res, err := svc.Create(ctx, cust(7), 1, &start, nil)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, cust(7), res.Booking.ID)
	require.NoError(t, err)
	require.Len(t, notifier.calls, 2) // created + cancelled

	out, err := svc.Cancel(ctx, cust(7), res.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, out.Booking.Status)
	assert.NotEmpty(t, out.Tables, "a snapshot is still returned")
	assert.Len(t, notifier.calls, 2, "no second cancellation notification")
}

func TestCancelNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.Cancel(context.Background(), cust(7), 424242)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUserBookings(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	start := testNow.Add(24 * time.Hour)
	_, err := svc.Create(ctx, cust(7), 1, &start, nil)
	require.NoError(t, err)
	other := start.Add(6 * time.Hour)
	_, err = svc.Create(ctx, cust(8), 1, &other, nil)
	require.NoError(t, err)

	mine, err := svc.UserBookings(ctx, 7)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, uint64(7), mine[0].UserID)

	_, err = svc.UserBookings(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNotificationRecipientPrefersOwner(t *testing.T) {
	svc, _, store, notifier := newTestService()
	ctx := context.Background()

	start := testNow.Add(24 * time.Hour)
	res, err := svc.Create(ctx, cust(7), 1, &start, nil)
	require.NoError(t, err)

	// simulate the owner email a DB read would resolve
	store.bookings[res.Booking.ID].UserEmail = "owner@example.com"

	admin := Principal{UserID: 99, Role: model.RoleAdmin, Email: "admin@example.com"}
	_, err = svc.Update(ctx, admin, res.Booking.ID, start.Add(time.Hour))
	require.NoError(t, err)

	last := notifier.calls[len(notifier.calls)-1]
	assert.Equal(t, "updated", last.kind)
	assert.Equal(t, "owner@example.com", last.email, "the owner is notified, not the admin")
}
