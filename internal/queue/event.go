// Package queue defines the notification events exchanged over the
// message broker and the plumbing to publish and consume them.  Events
// carry everything a consumer needs to compose an email without
// querying the primary database.
package queue

// EventKind discriminates the payload of an Event.
type EventKind string

const (
	KindBookingCreated   EventKind = "booking.created"
	KindBookingUpdated   EventKind = "booking.updated"
	KindBookingCancelled EventKind = "booking.cancelled"
	KindContactMessage   EventKind = "contact.message"
)

// BookingEvent describes a booking state change.  Times are RFC3339
// strings in UTC.  OldStartsAt is set only for updates.
type BookingEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	Recipient   string `json:"recipient"`
	TableNumber uint32 `json:"table_number"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	OldStartsAt string `json:"old_starts_at,omitempty"`
	Price       int64  `json:"price"`
	Discount    int64  `json:"discount"`
	FinalPrice  int64  `json:"final_price"`
	OfferTitle  string `json:"offer_title,omitempty"`
}

// ContactEvent describes a contact-form submission to forward to the
// admins.  The first recipient gets the To header, the rest are BCC'd.
type ContactEvent struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Subject    string   `json:"subject"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

// Event is the envelope put on the notification queue.  Exactly one of
// Booking and Contact is set, matching Kind.
type Event struct {
	Kind       EventKind     `json:"kind"`
	OccurredAt string        `json:"occurred_at"`
	Booking    *BookingEvent `json:"booking,omitempty"`
	Contact    *ContactEvent `json:"contact,omitempty"`
}
