package model

import "time"

// Contact is a message submitted through the public contact form.
// Messages are stored before any email is attempted so that a broken
// mail setup never loses them.
type Contact struct {
	ID        uint64    `json:"id"`      // contacts.id
	Name      string    `json:"name"`    // contacts.name
	Email     string    `json:"email"`   // contacts.email
	Subject   string    `json:"subject"` // contacts.subject
	Message   string    `json:"message"` // contacts.message
	CreatedAt time.Time `json:"created_at"`
}
