package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/iliyamo/restaurant-table-booking/internal/booking"
	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// BookingRepo persists bookings.  It implements booking.BookingStore,
// including the storage-level double-booking guard: Create and
// Reschedule wrap their overlap check and write in a serializable
// transaction that locks the table's active bookings in the requested
// window, so two concurrent requests for the same slot cannot both
// pass the check.
type BookingRepo struct {
	db     *sql.DB
	tables *TableRepo
}

// NewBookingRepo returns a BookingRepo bound to the given database.
// The table repo is used to resolve booking.Table on reads.
func NewBookingRepo(db *sql.DB, tables *TableRepo) *BookingRepo {
	return &BookingRepo{db: db, tables: tables}
}

// FindBooking loads a booking with its owner's email and its table
// resolved.  A missing row surfaces as booking.ErrBookingNotFound.
func (r *BookingRepo) FindBooking(ctx context.Context, id uint64) (model.Booking, error) {
	const q = `SELECT b.id, b.user_id, u.email, b.table_id, b.start_time, b.end_time,
	                  b.status, b.price, b.discount, b.final_price, b.applied_offers,
	                  b.created_at, b.updated_at
	           FROM bookings b
	           JOIN users u ON u.id = b.user_id
	           WHERE b.id = ?`
	var (
		b       model.Booking
		applied sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.UserID, &b.UserEmail, &b.TableID, &b.StartTime, &b.EndTime,
		&b.Status, &b.Price, &b.Discount, &b.FinalPrice, &applied,
		&b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, booking.ErrBookingNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	if applied.Valid && applied.String != "" {
		if err := json.Unmarshal([]byte(applied.String), &b.AppliedOffers); err != nil {
			return model.Booking{}, err
		}
	}
	t, err := r.tables.FindTable(ctx, b.TableID)
	if err != nil {
		return model.Booking{}, err
	}
	b.Table = &t
	return b, nil
}

// ActiveOverlapping returns active bookings across all tables whose
// interval intersects [start, end).  Only the fields needed to derive
// an availability snapshot are loaded.
func (r *BookingRepo) ActiveOverlapping(ctx context.Context, start, end time.Time) ([]model.Booking, error) {
	const q = `SELECT id, user_id, table_id, start_time, end_time, status
	           FROM bookings
	           WHERE status = 'booked' AND start_time < ? AND end_time > ?`
	rows, err := r.db.QueryContext(ctx, q, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.TableID, &b.StartTime, &b.EndTime, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create inserts a new booking after locking conflicting rows.  The
// SELECT ... FOR UPDATE inside a serializable transaction takes range
// locks over the table's active bookings in the window, so a
// concurrent insert for the same slot blocks until this transaction
// finishes and then sees the new row.  An overlap found under the lock
// is reported as booking.ErrSlotTaken.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := lockConflicts(ctx, tx, b.TableID, b.StartTime, b.EndTime, 0); err != nil {
		return err
	}

	applied, err := json.Marshal(b.AppliedOffers)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (user_id, table_id, start_time, end_time, status,
			price, discount, final_price, applied_offers)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		b.UserID, b.TableID, b.StartTime, b.EndTime, b.Status,
		b.Price, b.Discount, b.FinalPrice, applied)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	if err := tx.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM bookings WHERE id = ?`, b.ID).
		Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Reschedule persists new times and pricing for an existing booking
// under the same guard as Create, excluding the booking itself from
// the conflict scan so moving onto its own current slot succeeds.
func (r *BookingRepo) Reschedule(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := lockConflicts(ctx, tx, b.TableID, b.StartTime, b.EndTime, b.ID); err != nil {
		return err
	}

	applied, err := json.Marshal(b.AppliedOffers)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET start_time=?, end_time=?, price=?, discount=?,
			final_price=?, applied_offers=?, updated_at=NOW()
		 WHERE id=?`,
		b.StartTime, b.EndTime, b.Price, b.Discount, b.FinalPrice, applied, b.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return booking.ErrBookingNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// lockConflicts locks every active booking on the table overlapping
// [start, end) and returns booking.ErrSlotTaken when one exists.
// excludeID skips the booking being rescheduled (0 skips nothing).
func lockConflicts(ctx context.Context, tx *sql.Tx, tableID uint64, start, end time.Time, excludeID uint64) error {
	const q = `SELECT id FROM bookings
	           WHERE table_id = ? AND status = 'booked'
	             AND start_time < ? AND end_time > ?
	             AND id <> ?
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, tableID, end, start, excludeID)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return booking.ErrSlotTaken
	}
	return rows.Err()
}

// SetStatus updates only the status column.
func (r *BookingRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status=?, updated_at=NOW() WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

// ListByUser returns the user's bookings ordered by start time
// descending, with tables attached from a single bulk load.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT id, user_id, table_id, start_time, end_time, status,
	                  price, discount, final_price, applied_offers, created_at, updated_at
	           FROM bookings
	           WHERE user_id = ?
	           ORDER BY start_time DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		var (
			b       model.Booking
			applied sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.TableID, &b.StartTime, &b.EndTime,
			&b.Status, &b.Price, &b.Discount, &b.FinalPrice, &applied,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		if applied.Valid && applied.String != "" {
			if err := json.Unmarshal([]byte(applied.String), &b.AppliedOffers); err != nil {
				return nil, err
			}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	tables, err := r.tables.FindTables(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.Table, len(tables))
	for i := range tables {
		byID[tables[i].ID] = &tables[i]
	}
	for i := range out {
		out[i].Table = byID[out[i].TableID]
	}
	return out, nil
}

// MarkExpiredCompleted sweeps every booked booking whose end time has
// passed to completed and returns the affected count.
func (r *BookingRepo) MarkExpiredCompleted(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status='completed', updated_at=NOW()
		 WHERE status='booked' AND end_time < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
