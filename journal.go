package brokerage

import (
	"fmt"
	"log"
	"sort"
)

// Journal owns the accounts and their transactions, and drives the side
// effects each transaction kind implies on the Position Ledger and the Price
// Store. All mutations go through the Journal so derived state can never
// drift from the transaction log.
//
// The model is single-writer and synchronous: every operation runs to
// completion before the next is issued, and durability is delegated to the
// injected Store.
type Journal struct {
	store      Store
	accounts   map[int64]*Account
	securities map[int64]Security
	positions  *PositionLedger
	prices     *PriceStore
}

// NewJournal loads every table from the store and indexes it.
func NewJournal(store Store) (*Journal, error) {
	j := &Journal{
		store:      store,
		accounts:   make(map[int64]*Account),
		securities: make(map[int64]Security),
		positions:  NewPositionLedger(),
		prices:     NewPriceStore(),
	}

	accounts, err := store.Accounts(false)
	if err != nil {
		return nil, fmt.Errorf("could not load accounts: %w", err)
	}
	for _, a := range accounts {
		j.accounts[a.ID] = a
	}

	securities, err := store.Securities()
	if err != nil {
		return nil, fmt.Errorf("could not load securities: %w", err)
	}
	for _, sec := range securities {
		j.securities[sec.ID] = sec
	}

	positions, err := store.Positions()
	if err != nil {
		return nil, fmt.Errorf("could not load positions: %w", err)
	}
	for _, p := range positions {
		j.positions.load(p)
	}

	prices, err := store.Prices()
	if err != nil {
		return nil, fmt.Errorf("could not load prices: %w", err)
	}
	for _, p := range prices {
		j.prices.load(p)
	}

	return j, nil
}

// --- Accounts ---

// AddAccount persists a new account and indexes it.
func (j *Journal) AddAccount(a *Account) error {
	if a.ID != 0 {
		return fmt.Errorf("account %d already has an identity", a.ID)
	}
	if err := j.store.SaveAccount(a); err != nil {
		return err
	}
	j.accounts[a.ID] = a
	return nil
}

// UpdateAccount persists changes to an already-known account's metadata.
func (j *Journal) UpdateAccount(a *Account) error {
	if _, ok := j.accounts[a.ID]; !ok {
		return fmt.Errorf("unknown account %d", a.ID)
	}
	return j.store.SaveAccount(a)
}

// DeleteAccount removes an account from the store and the index.
func (j *Journal) DeleteAccount(a *Account) error {
	if _, ok := j.accounts[a.ID]; !ok {
		return fmt.Errorf("unknown account %d", a.ID)
	}
	if err := j.store.RemoveAccount(a); err != nil {
		return err
	}
	delete(j.accounts, a.ID)
	return nil
}

// Account returns the account with the given id, or false.
func (j *Journal) Account(id int64) (*Account, bool) {
	a, ok := j.accounts[id]
	return a, ok
}

// Accounts returns all accounts ordered by id, optionally only open ones.
func (j *Journal) Accounts(openOnly bool) []*Account {
	var out []*Account
	for _, a := range j.accounts {
		if openOnly && a.Closed {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}

// --- Securities ---

// AddSecurity persists a new security and indexes it.
func (j *Journal) AddSecurity(sec *Security) error {
	if sec.Symbol == "" {
		return fmt.Errorf("security symbol is missing")
	}
	if err := j.store.SaveSecurity(sec); err != nil {
		return err
	}
	j.securities[sec.ID] = *sec
	return nil
}

// DeleteSecurity removes a security from the store and the index.
func (j *Journal) DeleteSecurity(sec Security) error {
	if _, ok := j.securities[sec.ID]; !ok {
		return fmt.Errorf("unknown security %d", sec.ID)
	}
	if err := j.store.RemoveSecurity(sec); err != nil {
		return err
	}
	delete(j.securities, sec.ID)
	return nil
}

// Security returns the security with the given id, or false. An unknown id is
// a legitimate lookup miss, not an error.
func (j *Journal) Security(id int64) (Security, bool) {
	sec, ok := j.securities[id]
	return sec, ok
}

// SymbolFor returns the symbol of the security with the given id, or false
// when the id is unknown or not a security reference at all (0).
func (j *Journal) SymbolFor(id int64) (string, bool) {
	sec, ok := j.securities[id]
	if !ok {
		return "", false
	}
	return sec.Symbol, true
}

// Securities returns all securities ordered by id.
func (j *Journal) Securities() []Security {
	out := make([]Security, 0, len(j.securities))
	for _, sec := range j.securities {
		out = append(out, sec)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}

// --- Transactions ---

// AddTransaction classifies the transaction, applies its position effect,
// records the trade-derived quote for buys and sells, appends it to the
// account's journal and persists both. The stored (normalized, identified)
// transaction is returned.
//
// Appending preserves insertion order, not date order: user entry order is
// independent of transaction date.
func (j *Journal) AddTransaction(a *Account, tx Transaction) (Transaction, error) {
	acct, ok := j.accounts[a.ID]
	if !ok {
		return Transaction{}, fmt.Errorf("unknown account %d", a.ID)
	}
	if tx.ID != 0 {
		return Transaction{}, fmt.Errorf("transaction %d was already recorded; delete and recreate it instead", tx.ID)
	}
	if _, err := ParseTxType(string(tx.Kind)); err != nil {
		return Transaction{}, err
	}

	tx.AccountID = acct.ID
	tx = tx.normalized()
	if tx.Date.IsZero() {
		tx.Date = Today()
	}

	eff := tx.Kind.effect()
	if eff.shares != 0 {
		if _, ok := j.securities[tx.SecurityID]; !ok {
			return Transaction{}, fmt.Errorf("%s transaction references unknown security %d", tx.Kind, tx.SecurityID)
		}
		var pos *Position
		if eff.shares > 0 {
			pos = j.positions.ApplyBuy(acct.ID, tx.SecurityID, tx.Quantity)
		} else {
			pos = j.positions.ApplySell(acct.ID, tx.SecurityID, tx.Quantity)
		}
		if err := j.store.SavePosition(pos); err != nil {
			return Transaction{}, err
		}
	}

	if quote, ok := tx.quote(); ok {
		// A trade is market data too: record it as a non-closing quote.
		// Official closing prices recorded later take precedence.
		if rec, changed := j.prices.Record(tx.SecurityID, tx.Date, quote, false); changed {
			if err := j.store.SavePrice(rec); err != nil {
				return Transaction{}, err
			}
		}
	}

	if err := j.store.SaveTransaction(&tx); err != nil {
		return Transaction{}, err
	}
	acct.Transactions = append(acct.Transactions, tx)
	if err := j.store.SaveAccount(acct); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// DeleteTransaction reverses the transaction's position effect exactly,
// removes it from its account's journal and persists the removal. It returns
// the refreshed account view.
//
// Price history is intentionally not rolled back: a historical quote remains
// valid market data regardless of which transaction recorded it.
//
// Deletion is terminal. Deleting a transaction that is no longer in its
// account's journal, or whose position cannot be located, is an invariant
// violation and fails before any state is mutated.
func (j *Journal) DeleteTransaction(tx Transaction) (*Account, error) {
	acct, ok := j.accounts[tx.AccountID]
	if !ok {
		return nil, fmt.Errorf("transaction %d references unknown account %d", tx.ID, tx.AccountID)
	}
	stored, ok := acct.Transaction(tx.ID)
	if !ok {
		return nil, fmt.Errorf("transaction %d is not in account %d's journal (already deleted?)", tx.ID, acct.ID)
	}

	eff := stored.Kind.effect()
	if eff.shares != 0 {
		var pos Position
		var removed bool
		var err error
		if eff.shares > 0 {
			pos, removed, err = j.positions.ReverseBuy(acct.ID, stored.SecurityID, stored.Quantity)
		} else {
			pos, removed, err = j.positions.ReverseSell(acct.ID, stored.SecurityID, stored.Quantity)
		}
		if err != nil {
			return nil, fmt.Errorf("deleting transaction %d: %w", stored.ID, err)
		}
		if removed {
			log.Printf("position %d/%d back to zero, removing", acct.ID, stored.SecurityID)
			if err := j.store.RemovePosition(pos); err != nil {
				return nil, err
			}
		} else if err := j.store.SavePosition(&pos); err != nil {
			return nil, err
		}
	}

	for i, t := range acct.Transactions {
		if t.ID == stored.ID {
			acct.Transactions = append(acct.Transactions[:i], acct.Transactions[i+1:]...)
			break
		}
	}
	if err := j.store.RemoveTransaction(stored); err != nil {
		return nil, err
	}
	if err := j.store.SaveAccount(acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// --- Positions and prices ---

// PositionsFor returns the account's live positions ordered by security id.
func (j *Journal) PositionsFor(account int64) []Position {
	return j.positions.For(account)
}

// Position returns the live position for the pair, or false.
func (j *Journal) Position(account, security int64) (Position, bool) {
	return j.positions.Get(account, security)
}

// RecordPrice upserts a quoted price for a declared security, applying the
// closing/non-closing precedence rule, and persists the result when it
// changed anything.
func (j *Journal) RecordPrice(security int64, on Date, amount Money, closing bool) (Price, error) {
	if _, ok := j.securities[security]; !ok {
		return Price{}, fmt.Errorf("unknown security %d", security)
	}
	if amount.IsNegative() {
		return Price{}, fmt.Errorf("price for security %d must not be negative, got %s", security, amount)
	}
	rec, changed := j.prices.Record(security, on, amount, closing)
	if !changed {
		log.Printf("%s: keeping closing price for security %d, ignoring intraday %s", on, security, amount)
		return *rec, nil
	}
	if err := j.store.SavePrice(rec); err != nil {
		return Price{}, err
	}
	return *rec, nil
}

// NewestPrice returns the most recent price for the security not after asOf
// (zero asOf means no bound), or zero Money when none exists.
func (j *Journal) NewestPrice(security int64, asOf Date) Money {
	return j.prices.Newest(security, asOf)
}

// PriceOn returns the price recorded for the exact date, or false.
func (j *Journal) PriceOn(security int64, on Date) (Price, bool) {
	return j.prices.PriceOn(security, on)
}

// SecurityPrices returns all recorded prices for the security in
// chronological order.
func (j *Journal) SecurityPrices(security int64) []Price {
	return j.prices.For(security)
}
