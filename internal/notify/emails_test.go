package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-booking/internal/queue"
)

func TestComposeEmailBookingCreated(t *testing.T) {
	subject, body, ok := ComposeEmail(queue.Event{
		Kind: queue.KindBookingCreated,
		Booking: &queue.BookingEvent{
			TableNumber: 4,
			StartsAt:    "2026-06-15T19:00:00Z",
			EndsAt:      "2026-06-15T21:00:00Z",
			Price:       1000,
			Discount:    200,
			FinalPrice:  800,
			OfferTitle:  "weekday",
		},
	})
	require.True(t, ok)
	assert.Equal(t, "Booking Confirmed", subject)
	assert.Contains(t, body, "<strong>Table:</strong> 4")
	assert.Contains(t, body, "<strong>Total Paid:</strong> 800")
	assert.Contains(t, body, "weekday")
}

func TestComposeEmailUpdateCarriesOldTime(t *testing.T) {
	subject, body, ok := ComposeEmail(queue.Event{
		Kind: queue.KindBookingUpdated,
		Booking: &queue.BookingEvent{
			TableNumber: 2,
			StartsAt:    "2026-06-16T19:00:00Z",
			OldStartsAt: "2026-06-15T19:00:00Z",
			FinalPrice:  500,
		},
	})
	require.True(t, ok)
	assert.Equal(t, "Your Booking Has Been Updated", subject)
	assert.Contains(t, body, "<strong>Old Time:</strong> 2026-06-15T19:00:00Z")
	assert.Contains(t, body, "<strong>New Time:</strong> 2026-06-16T19:00:00Z")
}

func TestComposeEmailContactEscapesUserContent(t *testing.T) {
	_, body, ok := ComposeEmail(queue.Event{
		Kind: queue.KindContactMessage,
		Contact: &queue.ContactEvent{
			Name:    "Eve <script>",
			Email:   "eve@example.com",
			Subject: "hi",
			Message: "line one\nline two",
		},
	})
	require.True(t, ok)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "line one<br>line two")
}

func TestComposeEmailRejectsMalformedEvents(t *testing.T) {
	_, _, ok := ComposeEmail(queue.Event{Kind: "unknown.kind"})
	assert.False(t, ok)

	_, _, ok = ComposeEmail(queue.Event{Kind: queue.KindBookingCreated}) // nil payload
	assert.False(t, ok)
}
