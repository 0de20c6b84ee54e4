package brokerage

import "testing"

func TestPriceStore_Record_Precedence(t *testing.T) {
	on := day("2026-03-02")

	testCases := []struct {
		name        string
		quotes      []Price // applied in order; only Amount and Closing matter
		wantAmount  Money
		wantClosing bool
		wantCount   int
	}{
		{
			name:       "first quote is inserted",
			quotes:     []Price{{Amount: USD(5), Closing: false}},
			wantAmount: USD(5), wantClosing: false, wantCount: 1,
		},
		{
			name:       "closing replaces non-closing",
			quotes:     []Price{{Amount: USD(5), Closing: false}, {Amount: USD(7), Closing: true}},
			wantAmount: USD(7), wantClosing: true, wantCount: 1,
		},
		{
			name: "non-closing does not replace closing",
			quotes: []Price{
				{Amount: USD(5), Closing: false},
				{Amount: USD(7), Closing: true},
				{Amount: USD(3), Closing: false},
			},
			wantAmount: USD(7), wantClosing: true, wantCount: 1,
		},
		{
			name:       "non-closing replaces non-closing",
			quotes:     []Price{{Amount: USD(12.34), Closing: false}, {Amount: USD(43.21), Closing: false}},
			wantAmount: USD(43.21), wantClosing: false, wantCount: 1,
		},
		{
			name:       "closing replaces closing, last write wins",
			quotes:     []Price{{Amount: USD(12.34), Closing: true}, {Amount: USD(43.21), Closing: true}},
			wantAmount: USD(43.21), wantClosing: true, wantCount: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewPriceStore()
			for _, q := range tc.quotes {
				s.Record(1, on, q.Amount, q.Closing)
			}
			rec, ok := s.PriceOn(1, on)
			if !ok {
				t.Fatalf("PriceOn(1, %s) not found", on)
			}
			if !rec.Amount.Equal(tc.wantAmount) || rec.Closing != tc.wantClosing {
				t.Errorf("PriceOn(1, %s) = %s closing=%v, want %s closing=%v",
					on, rec.Amount, rec.Closing, tc.wantAmount, tc.wantClosing)
			}
			if got := len(s.For(1)); got != tc.wantCount {
				t.Errorf("len(For(1)) = %d, want %d: exactly one price per (security, date)", got, tc.wantCount)
			}
		})
	}
}

func TestPriceStore_Record_KeepsIdentityOnReplace(t *testing.T) {
	s := NewPriceStore()
	first, changed := s.Record(1, day("2026-03-02"), USD(5), false)
	if !changed {
		t.Fatal("first Record() reported no change")
	}
	first.ID = 42 // as the store collaborator would assign

	second, changed := s.Record(1, day("2026-03-02"), USD(7), true)
	if !changed {
		t.Fatal("closing Record() over non-closing reported no change")
	}
	if second.ID != 42 {
		t.Errorf("replacing record got identity %d, want the existing 42", second.ID)
	}
}

func TestPriceStore_Newest(t *testing.T) {
	s := NewPriceStore()
	s.Record(1, day("1999-12-31"), USD(5.26), false)
	s.Record(1, day("2019-01-01"), USD(11.17), false)
	s.Record(1, Today(), USD(4.18), true)

	testCases := []struct {
		name string
		asOf Date
		want Money
	}{
		{"unbounded returns the latest", Date{}, USD(4.18)},
		{"as of exact date", day("2019-01-01"), USD(11.17)},
		{"as of between dates", day("2005-06-15"), USD(5.26)},
		{"as of before all records", day("1980-01-01"), Money{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Newest(1, tc.asOf); !got.Equal(tc.want) {
				t.Errorf("Newest(1, %v) = %s, want %s", tc.asOf, got, tc.want)
			}
		})
	}
}

func TestPriceStore_Newest_UnknownSecurity(t *testing.T) {
	s := NewPriceStore()
	// A brand-new security legitimately has no price: zero Money, not an error.
	if got := s.Newest(99, Date{}); !got.IsZero() {
		t.Errorf("Newest(99) = %s, want zero", got)
	}
}

func TestPriceStore_PriceOn_NoFallback(t *testing.T) {
	s := NewPriceStore()
	s.Record(1, day("2026-01-05"), USD(10), true)

	if _, ok := s.PriceOn(1, day("2026-01-06")); ok {
		t.Error("PriceOn() fell back to an earlier date, want exact-date lookup only")
	}
	rec, ok := s.PriceOn(1, day("2026-01-05"))
	if !ok || !rec.Amount.Equal(USD(10)) {
		t.Errorf("PriceOn(exact) = %v %v, want 10 true", rec.Amount, ok)
	}
}
