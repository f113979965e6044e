package model

import "time"

// TimeRange is a daily availability window for a menu item, expressed
// as "HH:MM" strings.  A range whose To is not after From is treated
// as crossing midnight (e.g. 22:00–02:00).
type TimeRange struct {
	From string `json:"from"` // inclusive, "HH:MM"
	To   string `json:"to"`   // exclusive, "HH:MM"
}

// MenuItem is a dish served at a table.  Items can be limited to
// certain weekdays and daily time windows; an item with no windows is
// available all day.
//
// Fields:
//  Name           – dish name.
//  Category       – e.g. "Starter", "Main", "Dessert".
//  Veg            – vegetarian flag, used by listing filters.
//  Price          – per-item price.
//  Description    – free-form text.
//  AvailableTimes – daily windows; empty means all day.
//  AvailableDays  – weekdays 0=Sunday..6=Saturday; empty means every day.
//  IsAvailable    – master availability switch for the item.
type MenuItem struct {
	Name           string      `json:"name"`
	Category       string      `json:"category,omitempty"`
	Veg            bool        `json:"veg"`
	Price          int64       `json:"price"`
	Description    string      `json:"description,omitempty"`
	AvailableTimes []TimeRange `json:"available_times,omitempty"`
	AvailableDays  []int       `json:"available_days,omitempty"`
	IsAvailable    bool        `json:"is_available"`
}

// Offer is a discount rule attached to a table.  An offer applies to a
// booking instant t when it is active and t falls inside
// [ValidFrom, ValidTo]; a nil bound is unbounded on that side.
//
// Fields:
//  Title           – short label shown to the customer.
//  Description     – free-form text.
//  Bank            – optional sponsoring bank (e.g. "HDFC 10% cashback").
//  DiscountPercent – 0–100; treated as 0 when absent.
//  ValidFrom       – optional start of validity.
//  ValidTo         – optional end of validity.
//  Active          – toggle; inactive offers never apply.
type Offer struct {
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Bank            string     `json:"bank,omitempty"`
	DiscountPercent float64    `json:"discount_percent"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidTo         *time.Time `json:"valid_to,omitempty"`
	Active          bool       `json:"active"`
}

// Location describes where the restaurant (or a specific table area)
// is situated.  All fields are optional.
type Location struct {
	Address    string  `json:"address,omitempty"`
	City       string  `json:"city,omitempty"`
	State      string  `json:"state,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	Country    string  `json:"country,omitempty"`
	Lat        float64 `json:"lat,omitempty"`
	Lng        float64 `json:"lng,omitempty"`
}

// Table is a bookable restaurant table.  Offers and the food menu are
// stored denormalized as JSON documents on the tables row; they are
// small, always read together with the table and never queried on
// their own.
//
// Fields:
//  ID            – primary key identifier.
//  TableNumber   – unique human-facing number.
//  Seats         – seat count.
//  IsAvailable   – administrative availability switch.
//  Location      – optional address/coordinates.
//  Images        – image URLs for the listing.
//  FoodTypes     – cuisine summary, e.g. ["Italian", "Chinese"].
//  FoodMenu      – detailed menu items.
//  TableClass    – 1st-class, 2nd-class, 3rd-class or general.
//  ClassFeatures – features provided for the class.
//  Price         – base rate for one booking slot.
//  Offers        – discount rules evaluated at booking time.
//  Notes         – optional admin notes.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Table struct {
	ID            uint64     `json:"id"`             // tables.id
	TableNumber   uint32     `json:"table_number"`   // tables.table_number (unique)
	Seats         uint32     `json:"seats"`          // tables.seats
	IsAvailable   bool       `json:"is_available"`   // tables.is_available
	Location      *Location  `json:"location,omitempty"`
	Images        []string   `json:"images,omitempty"`
	FoodTypes     []string   `json:"food_types,omitempty"`
	FoodMenu      []MenuItem `json:"food_menu,omitempty"`
	TableClass    string     `json:"table_class"`
	ClassFeatures []string   `json:"class_features,omitempty"`
	Price         int64      `json:"price"`
	Offers        []Offer    `json:"offers,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Table classes stored in tables.table_class.
const (
	TableClassFirst   = "1st-class"
	TableClassSecond  = "2nd-class"
	TableClassThird   = "3rd-class"
	TableClassGeneral = "general"
)

// ValidTableClass reports whether s is one of the accepted class values.
func ValidTableClass(s string) bool {
	switch s {
	case TableClassFirst, TableClassSecond, TableClassThird, TableClassGeneral:
		return true
	}
	return false
}
