// Package notify implements the email side-channel: an SMTP mailer,
// the message templates, and the dispatcher that turns booking state
// changes into queued notification events.  Nothing in this package
// may fail a request; every error ends in a log line.
package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer sends HTML mail over SMTP with PLAIN auth.  The standard
// library client is deliberate: the messages are small, one
// connection per send is fine at this traffic, and it keeps the
// dependency surface down.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewMailer builds a Mailer.  from defaults to user when empty.
func NewMailer(host, port, user, pass, from string) *Mailer {
	if from == "" {
		from = user
	}
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from}
}

// Send delivers one HTML message.  bcc may be empty.
func (m *Mailer) Send(to string, bcc []string, subject, html string) error {
	if m.host == "" || to == "" {
		return fmt.Errorf("mailer: not configured or empty recipient")
	}
	var sb strings.Builder
	sb.WriteString("From: " + m.from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	if len(bcc) > 0 {
		sb.WriteString("Bcc: " + strings.Join(bcc, ",") + "\r\n")
	}
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(html)

	recipients := append([]string{to}, bcc...)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, recipients, []byte(sb.String()))
}

// SendAsync delivers in a detached goroutine.  Failures are logged and
// discarded; there is no retry.
func (m *Mailer) SendAsync(to string, bcc []string, subject, html string) {
	go func() {
		if err := m.Send(to, bcc, subject, html); err != nil {
			log.Printf("mailer: send to %s failed: %v", to, err)
			return
		}
		log.Printf("mailer: sent %q to %s", subject, to)
	}()
}
