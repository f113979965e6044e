package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func TestApplicableOffers(t *testing.T) {
	at := ts("2026-06-15T19:00:00Z")
	offers := []model.Offer{
		{Title: "inactive", DiscountPercent: 50, Active: false},
		{Title: "open-ended", DiscountPercent: 10, Active: true},
		{Title: "in-window", DiscountPercent: 20, Active: true,
			ValidFrom: tsp("2026-06-01T00:00:00Z"), ValidTo: tsp("2026-06-30T23:59:59Z")},
		{Title: "not-yet", DiscountPercent: 30, Active: true,
			ValidFrom: tsp("2026-07-01T00:00:00Z")},
		{Title: "expired", DiscountPercent: 40, Active: true,
			ValidTo: tsp("2026-06-01T00:00:00Z")},
	}

	got := ApplicableOffers(offers, at)
	require.Len(t, got, 2)
	assert.Equal(t, "open-ended", got[0].Title)
	assert.Equal(t, "in-window", got[1].Title)
}

func TestApplicableOffersBoundsInclusive(t *testing.T) {
	from := ts("2026-06-15T19:00:00Z")
	to := ts("2026-06-15T21:00:00Z")
	offer := []model.Offer{{Title: "exact", DiscountPercent: 10, Active: true, ValidFrom: &from, ValidTo: &to}}

	assert.Len(t, ApplicableOffers(offer, from), 1, "instant equal to ValidFrom applies")
	assert.Len(t, ApplicableOffers(offer, to), 1, "instant equal to ValidTo applies")
	assert.Empty(t, ApplicableOffers(offer, to.Add(time.Second)))
	assert.Empty(t, ApplicableOffers(offer, from.Add(-time.Second)))
}

func TestBestOffer(t *testing.T) {
	_, ok := BestOffer(nil)
	assert.False(t, ok)

	best, ok := BestOffer([]model.Offer{
		{Title: "first", DiscountPercent: 20},
		{Title: "second", DiscountPercent: 20},
		{Title: "small", DiscountPercent: 5},
	})
	require.True(t, ok)
	assert.Equal(t, "first", best.Title, "ties resolve to the earlier offer")

	best, ok = BestOffer([]model.Offer{
		{Title: "small", DiscountPercent: 5},
		{Title: "big", DiscountPercent: 25},
	})
	require.True(t, ok)
	assert.Equal(t, "big", best.Title)
}

func TestQuoteAt(t *testing.T) {
	at := ts("2026-06-15T19:00:00Z")
	table := &model.Table{
		Price: 1000,
		Offers: []model.Offer{
			{Title: "weekday", DiscountPercent: 20, Active: true},
			{Title: "stale", DiscountPercent: 90, Active: true, ValidTo: tsp("2026-01-01T00:00:00Z")},
		},
	}

	q := QuoteAt(table, at)
	assert.Equal(t, int64(1000), q.Price)
	assert.Equal(t, int64(200), q.Discount)
	assert.Equal(t, int64(800), q.FinalPrice)
	require.Len(t, q.AppliedOffers, 1)
	assert.Equal(t, "weekday", q.AppliedOffers[0].Title)
	assert.Equal(t, 20.0, q.AppliedOffers[0].DiscountPercent)
}

func TestQuoteAtNoApplicableOffer(t *testing.T) {
	at := ts("2026-06-15T19:00:00Z")
	table := &model.Table{Price: 750, Offers: []model.Offer{{Title: "off", DiscountPercent: 30}}}

	q := QuoteAt(table, at)
	assert.Equal(t, int64(750), q.Price)
	assert.Zero(t, q.Discount)
	assert.Equal(t, int64(750), q.FinalPrice)
	assert.Empty(t, q.AppliedOffers)
}

func TestQuoteAtZeroPercentNotSnapshotted(t *testing.T) {
	at := ts("2026-06-15T19:00:00Z")
	table := &model.Table{Price: 500, Offers: []model.Offer{{Title: "freebie", Active: true}}}

	q := QuoteAt(table, at)
	assert.Zero(t, q.Discount)
	assert.Equal(t, int64(500), q.FinalPrice)
	assert.Empty(t, q.AppliedOffers, "a zero-percent offer is not recorded as applied")
}

func TestQuoteAtDiscountRoundsAndClamps(t *testing.T) {
	at := ts("2026-06-15T19:00:00Z")

	q := QuoteAt(&model.Table{
		Price:  333,
		Offers: []model.Offer{{Title: "third", DiscountPercent: 33.4, Active: true}},
	}, at)
	assert.Equal(t, int64(111), q.Discount, "333 * 33.4% rounds to 111")
	assert.Equal(t, int64(222), q.FinalPrice)

	q = QuoteAt(&model.Table{
		Price:  100,
		Offers: []model.Offer{{Title: "broken", DiscountPercent: 150, Active: true}},
	}, at)
	assert.Equal(t, int64(0), q.FinalPrice, "final price never goes negative")
}
