package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/iliyamo/restaurant-table-booking/internal/queue"
)

// Subject lines for each event kind.
const (
	subjectCreated   = "Booking Confirmed"
	subjectUpdated   = "Your Booking Has Been Updated"
	subjectCancelled = "Booking Cancelled"
)

// ComposeEmail renders the subject and HTML body for an event.  The
// boolean is false for events this package does not know how to render.
func ComposeEmail(ev queue.Event) (subject, body string, ok bool) {
	switch ev.Kind {
	case queue.KindBookingCreated:
		if ev.Booking == nil {
			return "", "", false
		}
		return subjectCreated, confirmationBody(ev.Booking), true
	case queue.KindBookingUpdated:
		if ev.Booking == nil {
			return "", "", false
		}
		return subjectUpdated, updateBody(ev.Booking), true
	case queue.KindBookingCancelled:
		if ev.Booking == nil {
			return "", "", false
		}
		return subjectCancelled, cancellationBody(ev.Booking), true
	case queue.KindContactMessage:
		if ev.Contact == nil {
			return "", "", false
		}
		return "New Contact Form Message: " + ev.Contact.Subject, contactBody(ev.Contact), true
	}
	return "", "", false
}

func confirmationBody(b *queue.BookingEvent) string {
	var sb strings.Builder
	sb.WriteString("<h2>Booking Confirmed</h2>")
	fmt.Fprintf(&sb, "<p><strong>Table:</strong> %d</p>", b.TableNumber)
	fmt.Fprintf(&sb, "<p><strong>From:</strong> %s</p>", b.StartsAt)
	fmt.Fprintf(&sb, "<p><strong>To:</strong> %s</p>", b.EndsAt)
	fmt.Fprintf(&sb, "<p><strong>Price:</strong> %d</p>", b.Price)
	fmt.Fprintf(&sb, "<p><strong>Discount:</strong> %d</p>", b.Discount)
	fmt.Fprintf(&sb, "<p><strong>Total Paid:</strong> %d</p>", b.FinalPrice)
	if b.OfferTitle != "" {
		fmt.Fprintf(&sb, "<p><strong>Offer:</strong> %s</p>", html.EscapeString(b.OfferTitle))
	}
	sb.WriteString("<p>Thank you for booking with us!</p>")
	return sb.String()
}

func updateBody(b *queue.BookingEvent) string {
	var sb strings.Builder
	sb.WriteString("<h2>Booking Updated</h2>")
	fmt.Fprintf(&sb, "<p>Your booking for <strong>Table %d</strong> has been successfully updated.</p>", b.TableNumber)
	if b.OldStartsAt != "" {
		fmt.Fprintf(&sb, "<p><strong>Old Time:</strong> %s</p>", b.OldStartsAt)
	}
	fmt.Fprintf(&sb, "<p><strong>New Time:</strong> %s</p>", b.StartsAt)
	fmt.Fprintf(&sb, "<p><strong>Price:</strong> %d</p>", b.Price)
	fmt.Fprintf(&sb, "<p><strong>Discount:</strong> %d</p>", b.Discount)
	fmt.Fprintf(&sb, "<p><strong>New Total:</strong> %d</p>", b.FinalPrice)
	if b.OfferTitle != "" {
		fmt.Fprintf(&sb, "<p><strong>Offer Applied:</strong> %s</p>", html.EscapeString(b.OfferTitle))
	}
	sb.WriteString("<p>We look forward to seeing you!</p>")
	return sb.String()
}

func cancellationBody(b *queue.BookingEvent) string {
	var sb strings.Builder
	sb.WriteString("<h2>Booking Cancelled</h2>")
	fmt.Fprintf(&sb, "<p><strong>Table:</strong> %d</p>", b.TableNumber)
	fmt.Fprintf(&sb, "<p><strong>From:</strong> %s</p>", b.StartsAt)
	fmt.Fprintf(&sb, "<p><strong>To:</strong> %s</p>", b.EndsAt)
	fmt.Fprintf(&sb, "<p><strong>Amount Charged:</strong> %d</p>", b.FinalPrice)
	sb.WriteString("<p>We hope to see you again soon.</p>")
	return sb.String()
}

func contactBody(c *queue.ContactEvent) string {
	var sb strings.Builder
	sb.WriteString("<h2>New Contact Form Message</h2>")
	sb.WriteString("<p>You have received a new message from the contact form.</p>")
	fmt.Fprintf(&sb, "<p><strong>From:</strong> %s</p>", html.EscapeString(c.Name))
	fmt.Fprintf(&sb, "<p><strong>Email:</strong> %s</p>", html.EscapeString(c.Email))
	fmt.Fprintf(&sb, "<p><strong>Subject:</strong> %s</p>", html.EscapeString(c.Subject))
	fmt.Fprintf(&sb, "<div><p>%s</p></div>",
		strings.ReplaceAll(html.EscapeString(c.Message), "\n", "<br>"))
	return sb.String()
}
