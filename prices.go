package brokerage

import (
	"slices"
)

// Price is one quoted price for a security on a date. Closing quotes are
// official end-of-day prices and are authoritative over intraday or
// trade-derived quotes.
type Price struct {
	ID         int64 `json:"id"`
	SecurityID int64 `json:"security"`
	Date       Date  `json:"date"`
	Amount     Money `json:"amount"`
	Closing    bool  `json:"closing,omitempty"`
}

// PriceStore is the single source of truth for what a security traded at on a
// given date. It keeps one chronological series per security with exactly one
// price per (security, date) pair.
type PriceStore struct {
	series map[int64][]*Price // keyed by security id, sorted by date
}

// NewPriceStore creates an empty price store.
func NewPriceStore() *PriceStore {
	return &PriceStore{series: make(map[int64][]*Price)}
}

// load indexes an already-persisted price without applying the merge rule.
func (s *PriceStore) load(p Price) {
	cp := p
	recs := s.series[p.SecurityID]
	i, _ := slices.BinarySearchFunc(recs, cp.Date, func(r *Price, d Date) int { return r.Date.Compare(d) })
	s.series[p.SecurityID] = slices.Insert(recs, i, &cp)
}

// Record upserts a price for (security, date) and returns the live resulting
// record together with whether anything changed, so the caller can persist it
// and have an assigned ID stick.
//
// Conflict resolution between quote classes:
//   - no existing price for the date: the incoming price is inserted;
//   - existing non-closing, incoming closing: the closing price replaces it;
//   - existing closing, incoming non-closing: the closing price is kept,
//     nothing changes;
//   - same class on both sides: the latest write wins.
//
// The net effect is exactly one price per (security, date), and a closing
// quote is never silently downgraded by an intraday one.
func (s *PriceStore) Record(security int64, on Date, amount Money, closing bool) (*Price, bool) {
	recs := s.series[security]
	i, found := slices.BinarySearchFunc(recs, on, func(r *Price, d Date) int { return r.Date.Compare(d) })
	if !found {
		rec := &Price{SecurityID: security, Date: on, Amount: amount, Closing: closing}
		s.series[security] = slices.Insert(recs, i, rec)
		return rec, true
	}
	rec := recs[i]
	if rec.Closing && !closing {
		return rec, false
	}
	rec.Amount = amount
	rec.Closing = closing
	return rec, true
}

// Newest returns the amount of the most recent price for the security with a
// date not after asOf; a zero asOf means no upper bound. It returns zero
// Money when the security has no usable price record: a brand-new security
// legitimately has none, so this is a sentinel, not an error.
func (s *PriceStore) Newest(security int64, asOf Date) Money {
	recs := s.series[security]
	if len(recs) == 0 {
		return Money{}
	}
	if asOf.IsZero() {
		return recs[len(recs)-1].Amount
	}
	i, found := slices.BinarySearchFunc(recs, asOf, func(r *Price, d Date) int { return r.Date.Compare(d) })
	if found {
		return recs[i].Amount
	}
	if i == 0 {
		return Money{}
	}
	return recs[i-1].Amount
}

// PriceOn returns the price recorded for the exact date, or false. It never
// falls back to an earlier date.
func (s *PriceStore) PriceOn(security int64, on Date) (Price, bool) {
	recs := s.series[security]
	i, found := slices.BinarySearchFunc(recs, on, func(r *Price, d Date) int { return r.Date.Compare(d) })
	if !found {
		return Price{}, false
	}
	return *recs[i], true
}

// For returns all recorded prices for the security in chronological order.
func (s *PriceStore) For(security int64) []Price {
	recs := s.series[security]
	out := make([]Price, 0, len(recs))
	for _, r := range recs {
		out = append(out, *r)
	}
	return out
}
