package notify

import (
	"encoding/json"
	"fmt"

	"github.com/iliyamo/restaurant-table-booking/internal/queue"
)

// RunConsumer drains the notification queue and turns each event into
// an email.  It blocks forever (reconnecting as needed) and is meant
// to run on its own goroutine from main.
func RunConsumer(m *Mailer) {
	queue.StartConsumer(func(body []byte) error {
		var ev queue.Event
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		subject, html, ok := ComposeEmail(ev)
		if !ok {
			return fmt.Errorf("unknown event kind %q", ev.Kind)
		}
		to, bcc := recipients(ev)
		if to == "" {
			return fmt.Errorf("event %s has no recipient", ev.Kind)
		}
		return m.Send(to, bcc, subject, html)
	})
}

// recipients picks To/Bcc for an event.  Contact messages go to the
// first admin with the rest BCC'd; booking mail goes to the owner.
func recipients(ev queue.Event) (to string, bcc []string) {
	if ev.Kind == queue.KindContactMessage && ev.Contact != nil {
		if len(ev.Contact.Recipients) == 0 {
			return "", nil
		}
		return ev.Contact.Recipients[0], ev.Contact.Recipients[1:]
	}
	if ev.Booking != nil {
		return ev.Booking.Recipient, nil
	}
	return "", nil
}
