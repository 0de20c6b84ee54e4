package cmd

import (
	"testing"

	"github.com/mstrand/brokerage"
)

func TestParseQuotes(t *testing.T) {
	doc := []byte(`{
		"symbol": "AAPL",
		"quotes": [
			{"date": "2024-03-01", "open": 3.00, "close": 3.10},
			{"date": "2024-03-04", "close": 3.25},
			{"date": "bogus", "close": 9.99},
			{"date": "2024-03-05", "volume": 120000}
		]
	}`)

	quotes, err := parseQuotes(doc, "$.quotes")
	if err != nil {
		t.Fatalf("parseQuotes() error: %v", err)
	}
	// The bogus date and the entry without a close are skipped, not fatal.
	if len(quotes) != 2 {
		t.Fatalf("parsed %d quotes, want 2", len(quotes))
	}
	if quotes[0].day != brokerage.MustParseDate("2024-03-01") || quotes[0].close != 3.10 {
		t.Errorf("quotes[0] = %v %v, want 2024-03-01 at 3.10", quotes[0].day, quotes[0].close)
	}
	if quotes[1].day != brokerage.MustParseDate("2024-03-04") || quotes[1].close != 3.25 {
		t.Errorf("quotes[1] = %v %v, want 2024-03-04 at 3.25", quotes[1].day, quotes[1].close)
	}
}

func TestParseQuotes_NestedPath(t *testing.T) {
	doc := []byte(`{"data": {"daily": [{"date": "2024-01-02", "close": 11.17}]}}`)
	quotes, err := parseQuotes(doc, "$.data.daily")
	if err != nil {
		t.Fatalf("parseQuotes() error: %v", err)
	}
	if len(quotes) != 1 || quotes[0].close != 11.17 {
		t.Errorf("quotes = %v, want one at 11.17", quotes)
	}
}

func TestParseQuotes_Errors(t *testing.T) {
	if _, err := parseQuotes([]byte(`not json`), "$.quotes"); err == nil {
		t.Error("parseQuotes() on invalid JSON succeeded")
	}
	if _, err := parseQuotes([]byte(`{}`), "$.quotes"); err == nil {
		t.Error("parseQuotes() with a dead-end path succeeded")
	}
}
