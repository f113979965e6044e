package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/iliyamo/restaurant-table-booking/internal/booking"
	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// ErrTableNumberExists is returned when creating a table whose number
// is already taken.  Handlers should translate this into HTTP 409.
var ErrTableNumberExists = errors.New("table number already exists")

// TableRepo provides persistence for restaurant tables.  The offers,
// food menu, location and other document-shaped attributes are stored
// in JSON columns on the tables row and (un)marshalled here, so the
// rest of the application only ever sees model.Table.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// DB exposes the underlying handle for transaction management.
func (r *TableRepo) DB() *sql.DB { return r.db }

const tableColumns = `id, table_number, seats, is_available, location, images,
	food_types, food_menu, table_class, class_features, price, offers, notes,
	created_at, updated_at`

// FindTable returns a single table by id.  A missing row surfaces as
// booking.ErrTableNotFound.
func (r *TableRepo) FindTable(ctx context.Context, id uint64) (model.Table, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tableColumns+` FROM tables WHERE id = ?`, id)
	t, err := scanTable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Table{}, booking.ErrTableNotFound
	}
	return t, err
}

// FindTables returns all tables ordered by table number ascending.
func (r *TableRepo) FindTables(ctx context.Context) ([]model.Table, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tableColumns+` FROM tables ORDER BY table_number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tables := make([]model.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// Create inserts a new table and populates its generated id and
// timestamps.  A duplicate table number is reported as
// ErrTableNumberExists via the MySQL duplicate-key error.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	location, images, foodTypes, foodMenu, classFeatures, offers, err := marshalTableDocs(t)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tables (table_number, seats, is_available, location, images,
			food_types, food_menu, table_class, class_features, price, offers, notes)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.TableNumber, t.Seats, t.IsAvailable, location, images,
		foodTypes, foodMenu, t.TableClass, classFeatures, t.Price, offers, t.Notes)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrTableNumberExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM tables WHERE id = ?`, t.ID).
		Scan(&t.CreatedAt, &t.UpdatedAt)
}

// Update persists the full state of an existing table.  Partial
// updates are applied by the handler on a freshly loaded record before
// calling Update, mirroring a load-modify-save flow.
func (r *TableRepo) Update(ctx context.Context, t *model.Table) error {
	location, images, foodTypes, foodMenu, classFeatures, offers, err := marshalTableDocs(t)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE tables SET table_number=?, seats=?, is_available=?, location=?,
			images=?, food_types=?, food_menu=?, table_class=?, class_features=?,
			price=?, offers=?, notes=?, updated_at=NOW()
		 WHERE id=?`,
		t.TableNumber, t.Seats, t.IsAvailable, location, images,
		foodTypes, foodMenu, t.TableClass, classFeatures, t.Price, offers, t.Notes,
		t.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrTableNumberExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		// updated_at=NOW() always changes the row, so 0 means missing
		return booking.ErrTableNotFound
	}
	return err
}

// Delete removes a table.  Bookings referencing it are kept for
// history; the FK uses ON DELETE RESTRICT so tables with bookings
// cannot be removed accidentally.
func (r *TableRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tables WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return booking.ErrTableNotFound
	}
	return err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTable reads one tables row, decoding the JSON document columns.
func scanTable(row rowScanner) (model.Table, error) {
	var (
		t             model.Table
		location      sql.NullString
		images        sql.NullString
		foodTypes     sql.NullString
		foodMenu      sql.NullString
		classFeatures sql.NullString
		offers        sql.NullString
		notes         sql.NullString
	)
	err := row.Scan(&t.ID, &t.TableNumber, &t.Seats, &t.IsAvailable,
		&location, &images, &foodTypes, &foodMenu, &t.TableClass,
		&classFeatures, &t.Price, &offers, &notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Table{}, err
	}
	if notes.Valid {
		t.Notes = notes.String
	}
	if location.Valid && location.String != "" {
		var loc model.Location
		if err := json.Unmarshal([]byte(location.String), &loc); err != nil {
			return model.Table{}, err
		}
		t.Location = &loc
	}
	for _, col := range []struct {
		src sql.NullString
		dst any
	}{
		{images, &t.Images},
		{foodTypes, &t.FoodTypes},
		{foodMenu, &t.FoodMenu},
		{classFeatures, &t.ClassFeatures},
		{offers, &t.Offers},
	} {
		if col.src.Valid && col.src.String != "" {
			if err := json.Unmarshal([]byte(col.src.String), col.dst); err != nil {
				return model.Table{}, err
			}
		}
	}
	return t, nil
}

// marshalTableDocs encodes the document columns for INSERT/UPDATE.
// Nil slices are stored as empty JSON arrays so reads never depend on
// NULL handling for lists.
func marshalTableDocs(t *model.Table) (location, images, foodTypes, foodMenu, classFeatures, offers []byte, err error) {
	if t.Location != nil {
		if location, err = json.Marshal(t.Location); err != nil {
			return
		}
	}
	enc := func(v any) []byte {
		if err != nil {
			return nil
		}
		var b []byte
		b, err = json.Marshal(v)
		return b
	}
	if t.Images == nil {
		t.Images = []string{}
	}
	if t.FoodTypes == nil {
		t.FoodTypes = []string{}
	}
	if t.FoodMenu == nil {
		t.FoodMenu = []model.MenuItem{}
	}
	if t.ClassFeatures == nil {
		t.ClassFeatures = []string{}
	}
	if t.Offers == nil {
		t.Offers = []model.Offer{}
	}
	images = enc(t.Images)
	foodTypes = enc(t.FoodTypes)
	foodMenu = enc(t.FoodMenu)
	classFeatures = enc(t.ClassFeatures)
	offers = enc(t.Offers)
	return
}
