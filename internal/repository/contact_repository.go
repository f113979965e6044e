package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// ContactRepo stores contact-form submissions.  Messages are persisted
// before any notification attempt so a broken mail setup never loses
// them.
type ContactRepo struct{ DB *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{DB: db} }

// Create inserts a contact message and populates its generated id.
func (r *ContactRepo) Create(ctx context.Context, c *model.Contact) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO contacts (name, email, subject, message) VALUES (?,?,?,?)",
		c.Name, c.Email, c.Subject, c.Message)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM contacts WHERE id=?", c.ID).Scan(&c.CreatedAt)
}
