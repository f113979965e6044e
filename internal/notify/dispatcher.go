package notify

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/queue"
)

// Dispatcher implements booking.Notifier by publishing notification
// events from detached goroutines.  The request path returns before
// the publish resolves; a failed publish is logged and dropped, never
// retried and never surfaced to the caller.
type Dispatcher struct {
	timeout time.Duration
}

// NewDispatcher returns a Dispatcher with a 10s publish timeout.
func NewDispatcher() *Dispatcher { return &Dispatcher{timeout: 10 * time.Second} }

// BookingCreated fires a confirmation event for a new booking.
func (d *Dispatcher) BookingCreated(b model.Booking, email string) {
	d.fire(queue.Event{
		Kind:    queue.KindBookingCreated,
		Booking: bookingEvent(b, email, time.Time{}),
	})
}

// BookingUpdated fires an update event carrying the previous start time.
func (d *Dispatcher) BookingUpdated(b model.Booking, email string, oldStart time.Time) {
	d.fire(queue.Event{
		Kind:    queue.KindBookingUpdated,
		Booking: bookingEvent(b, email, oldStart),
	})
}

// BookingCancelled fires a cancellation event.
func (d *Dispatcher) BookingCancelled(b model.Booking, email string) {
	d.fire(queue.Event{
		Kind:    queue.KindBookingCancelled,
		Booking: bookingEvent(b, email, time.Time{}),
	})
}

// ContactSubmitted fires a contact-form event towards the admin list.
func (d *Dispatcher) ContactSubmitted(c model.Contact, recipients []string) {
	d.fire(queue.Event{
		Kind: queue.KindContactMessage,
		Contact: &queue.ContactEvent{
			Name:       c.Name,
			Email:      c.Email,
			Subject:    c.Subject,
			Message:    c.Message,
			Recipients: recipients,
		},
	})
}

// fire publishes in the background.  The goroutine owns its own
// context; the originating request may be long gone by the time the
// broker answers.
func (d *Dispatcher) fire(ev queue.Event) {
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := queue.Publish(ctx, ev); err != nil {
			log.Printf("notify: dropped %s event: %v", ev.Kind, err)
		}
	}()
}

func bookingEvent(b model.Booking, email string, oldStart time.Time) *queue.BookingEvent {
	ev := &queue.BookingEvent{
		BookingID:  b.ID,
		UserID:     b.UserID,
		Recipient:  email,
		StartsAt:   b.StartTime.UTC().Format(time.RFC3339),
		EndsAt:     b.EndTime.UTC().Format(time.RFC3339),
		Price:      b.Price,
		Discount:   b.Discount,
		FinalPrice: b.FinalPrice,
	}
	if b.Table != nil {
		ev.TableNumber = b.Table.TableNumber
	}
	if !oldStart.IsZero() {
		ev.OldStartsAt = oldStart.UTC().Format(time.RFC3339)
	}
	if len(b.AppliedOffers) > 0 {
		ev.OfferTitle = b.AppliedOffers[0].Title
	}
	return ev
}
