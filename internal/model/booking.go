package model

import "time"

// Booking statuses stored in bookings.status.  A booking starts as
// "booked", becomes "cancelled" through an explicit cancel, and
// becomes "completed" when its end time passes.  Only "booked"
// bookings count against table availability.
const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// AppliedOffer is a snapshot of the offer terms that produced a
// booking's discount, copied at booking (or reschedule) time.  The
// snapshot keeps historical pricing accurate even if the table's
// offer list is edited later.
type AppliedOffer struct {
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Bank            string     `json:"bank,omitempty"`
	DiscountPercent float64    `json:"discount_percent"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidTo         *time.Time `json:"valid_to,omitempty"`
}

// Booking reserves one table for one user over the half-open interval
// [StartTime, EndTime).  Pricing fields are fixed at creation and
// recomputed on reschedule; FinalPrice is always max(0, Price−Discount).
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – owner of the booking; never reassigned.
//  TableID       – booked table; never reassigned.
//  Table         – table record, populated by reads that join it.
//  StartTime     – slot start (UTC).
//  EndTime       – slot end (UTC), strictly after StartTime.
//  Status        – booked, cancelled or completed.
//  Price         – table base rate at decision time.
//  Discount      – amount subtracted from Price.
//  FinalPrice    – max(0, Price−Discount).
//  AppliedOffers – offer snapshot that produced Discount.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Booking struct {
	ID            uint64         `json:"id"`         // bookings.id
	UserID        uint64         `json:"user_id"`    // bookings.user_id
	UserEmail     string         `json:"-"`          // users.email, joined on reads that need it
	TableID       uint64         `json:"table_id"`   // bookings.table_id
	Table         *Table         `json:"table,omitempty"`
	StartTime     time.Time      `json:"start_time"` // bookings.start_time
	EndTime       time.Time      `json:"end_time"`   // bookings.end_time
	Status        string         `json:"status"`     // bookings.status
	Price         int64          `json:"price"`
	Discount      int64          `json:"discount"`
	FinalPrice    int64          `json:"final_price"`
	AppliedOffers []AppliedOffer `json:"applied_offers,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Active reports whether the booking currently blocks its table's slot.
func (b *Booking) Active() bool { return b.Status == StatusBooked }
