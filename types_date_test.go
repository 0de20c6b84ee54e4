package brokerage

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"2025-02-30", Date{}, true},
		{"", Date{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			if tc.err {
				if err == nil {
					t.Fatalf("ParseDate(%q) succeeded, want error", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error: %v", tc.input, err)
			}
			if got != tc.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestDateNormalization(t *testing.T) {
	// Out-of-range components roll over, like time.Date.
	if got, want := NewDate(2024, time.January, 32), NewDate(2024, time.February, 1); got != want {
		t.Errorf("NewDate(2024, 1, 32) = %v, want %v", got, want)
	}
	if got, want := NewDate(2024, time.December, 31).Add(1), NewDate(2025, time.January, 1); got != want {
		t.Errorf("Add(1) across the year = %v, want %v", got, want)
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2024, time.March, 1)
	b := NewDate(2024, time.March, 2)

	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before() broken for %v, %v", a, b)
	}
	if !b.After(a) || a.After(b) {
		t.Errorf("After() broken for %v, %v", a, b)
	}
	if a.Compare(b) != -1 || b.Compare(a) != +1 || a.Compare(a) != 0 {
		t.Errorf("Compare() broken for %v, %v", a, b)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2024-03-05"` {
		t.Errorf("marshaled date = %s, want \"2024-03-05\"", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}

	if err := json.Unmarshal([]byte(`17`), &back); err == nil {
		t.Error("unmarshaling a non-string date succeeded")
	}
}

func TestDateZero(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Error("zero value Date is not IsZero()")
	}
	if NewDate(2024, time.January, 1).IsZero() {
		t.Error("real date reports IsZero()")
	}
}
