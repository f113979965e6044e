// Package pricing implements the pure pricing rules for table
// bookings: which offers apply at a given instant, which one of them
// wins, and what the resulting discount and final price are.  The
// package performs no I/O and has no dependencies beyond the model
// types, which keeps it trivially testable.
package pricing

import (
	"math"
	"time"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// ApplicableOffers returns the subset of offers that apply at instant t,
// preserving list order.  An offer applies when it is active and t lies
// inside [ValidFrom, ValidTo]; a nil bound does not constrain that side.
func ApplicableOffers(offers []model.Offer, t time.Time) []model.Offer {
	out := make([]model.Offer, 0, len(offers))
	for _, o := range offers {
		if !o.Active {
			continue
		}
		if o.ValidFrom != nil && o.ValidFrom.After(t) {
			continue
		}
		if o.ValidTo != nil && o.ValidTo.Before(t) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// BestOffer picks the offer with the highest DiscountPercent.  On ties
// the first offer in list order wins.  A missing percent counts as 0,
// so such an offer is only returned when nothing better exists.  The
// second return value is false when the list is empty.
func BestOffer(offers []model.Offer) (model.Offer, bool) {
	if len(offers) == 0 {
		return model.Offer{}, false
	}
	best := offers[0]
	for _, o := range offers[1:] {
		if o.DiscountPercent > best.DiscountPercent {
			best = o
		}
	}
	return best, true
}

// Quote holds the priced terms of a booking at a specific instant.
// FinalPrice is never negative.
type Quote struct {
	Price         int64
	Discount      int64
	FinalPrice    int64
	AppliedOffers []model.AppliedOffer
}

// QuoteAt prices a booking of the given table starting at t.  It
// evaluates the table's offers at t, applies the single best one and
// snapshots its terms, so later edits to the table's offer list cannot
// change what this booking was charged.
func QuoteAt(table *model.Table, t time.Time) Quote {
	q := Quote{Price: table.Price}
	best, ok := BestOffer(ApplicableOffers(table.Offers, t))
	if ok && best.DiscountPercent > 0 {
		q.Discount = int64(math.Round(float64(table.Price) * best.DiscountPercent / 100))
		q.AppliedOffers = []model.AppliedOffer{{
			Title:           best.Title,
			Description:     best.Description,
			Bank:            best.Bank,
			DiscountPercent: best.DiscountPercent,
			ValidFrom:       best.ValidFrom,
			ValidTo:         best.ValidTo,
		}}
	}
	q.FinalPrice = q.Price - q.Discount
	if q.FinalPrice < 0 {
		q.FinalPrice = 0
	}
	return q
}
