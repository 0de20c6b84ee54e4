package brokerage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// cmpMoneyAndQuantity lets go-cmp compare the exact-decimal value types by
// their own equality instead of their unexported internals.
var cmpMoneyAndQuantity = cmp.Options{
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) }),
	cmpopts.EquateComparable(Date{}),
}

// USD is a helper for tests to create dollar money from a const.
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for tests to parse an ISO date.
func day(s string) Date { return MustParseDate(s) }

// newTestJournal builds an empty journal over a fresh in-memory store.
func newTestJournal(t *testing.T) (*Journal, *MemStore) {
	t.Helper()
	store := NewMemStore()
	j, err := NewJournal(store)
	if err != nil {
		t.Fatalf("NewJournal() error: %v", err)
	}
	return j, store
}

// addTestAccount registers an account and fails the test on error.
func addTestAccount(t *testing.T, j *Journal, name string) *Account {
	t.Helper()
	a := &Account{Name: name, Institution: "Test Brokers"}
	if err := j.AddAccount(a); err != nil {
		t.Fatalf("AddAccount(%q) error: %v", name, err)
	}
	return a
}

// addTestSecurity registers a security and fails the test on error.
func addTestSecurity(t *testing.T, j *Journal, symbol string) Security {
	t.Helper()
	sec := &Security{Symbol: symbol, Name: symbol + " Inc."}
	if err := j.AddSecurity(sec); err != nil {
		t.Fatalf("AddSecurity(%q) error: %v", symbol, err)
	}
	return *sec
}

// mustAdd records a transaction and fails the test on error.
func mustAdd(t *testing.T, j *Journal, a *Account, tx Transaction) Transaction {
	t.Helper()
	stored, err := j.AddTransaction(a, tx)
	if err != nil {
		t.Fatalf("AddTransaction(%v) error: %v", tx.Kind, err)
	}
	return stored
}
