package brokerage

import (
	"fmt"
	"sort"
)

// Position is the derived net holding of one security in one account.
// Positive quantities are long, negative quantities are short. There is at
// most one live Position per (account, security) pair.
type Position struct {
	ID         int64    `json:"id"`
	AccountID  int64    `json:"account"`
	SecurityID int64    `json:"security"`
	Quantity   Quantity `json:"quantity"`
}

// ErrPositionNotFound is returned when a reversal targets a position that no
// longer exists. A reversal is only ever issued for a transaction previously
// applied, so a missing position is an invariant violation, not a lookup miss.
var ErrPositionNotFound = fmt.Errorf("position not found")

type posKey struct {
	account  int64
	security int64
}

// PositionLedger maintains the unique derived Position per (account,
// security) pair. Positions are only ever mutated through transaction
// application and its exact inverse, never directly by callers.
type PositionLedger struct {
	positions map[posKey]*Position
}

// NewPositionLedger creates an empty position ledger.
func NewPositionLedger() *PositionLedger {
	return &PositionLedger{positions: make(map[posKey]*Position)}
}

// load indexes an already-persisted position without applying any effect.
func (l *PositionLedger) load(p Position) {
	cp := p
	l.positions[posKey{p.AccountID, p.SecurityID}] = &cp
}

// Get returns the live position for the pair, or false.
func (l *PositionLedger) Get(account, security int64) (Position, bool) {
	p, ok := l.positions[posKey{account, security}]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// For returns the account's live positions ordered by security id.
func (l *PositionLedger) For(account int64) []Position {
	var out []Position
	for k, p := range l.positions {
		if k.account == account {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SecurityID < out[j].SecurityID })
	return out
}

// ApplyBuy adds quantity shares to the pair's position, creating it when
// absent. It is pure addition: buying against a short position makes it less
// negative. The returned pointer is the live record, so the caller can
// persist it and have the assigned ID stick.
func (l *PositionLedger) ApplyBuy(account, security int64, quantity Quantity) *Position {
	return l.apply(account, security, quantity)
}

// ApplySell removes quantity shares from the pair's position. Selling with no
// existing position opens a short: a position with negative quantity, by
// design and not an error.
func (l *PositionLedger) ApplySell(account, security int64, quantity Quantity) *Position {
	return l.apply(account, security, quantity.Neg())
}

func (l *PositionLedger) apply(account, security int64, delta Quantity) *Position {
	key := posKey{account, security}
	p, ok := l.positions[key]
	if !ok {
		p = &Position{AccountID: account, SecurityID: security, Quantity: delta}
		l.positions[key] = p
		return p
	}
	p.Quantity = p.Quantity.Add(delta)
	return p
}

// ReverseBuy is the exact algebraic inverse of ApplyBuy. When the resulting
// quantity is exactly zero the position is removed and removed is true.
func (l *PositionLedger) ReverseBuy(account, security int64, quantity Quantity) (pos Position, removed bool, err error) {
	return l.reverse(account, security, quantity.Neg())
}

// ReverseSell is the exact algebraic inverse of ApplySell.
func (l *PositionLedger) ReverseSell(account, security int64, quantity Quantity) (pos Position, removed bool, err error) {
	return l.reverse(account, security, quantity)
}

func (l *PositionLedger) reverse(account, security int64, delta Quantity) (Position, bool, error) {
	key := posKey{account, security}
	p, ok := l.positions[key]
	if !ok {
		return Position{}, false, fmt.Errorf("reversing account %d security %d: %w", account, security, ErrPositionNotFound)
	}
	p.Quantity = p.Quantity.Add(delta)
	if p.Quantity.IsZero() {
		delete(l.positions, key)
		return *p, true, nil
	}
	return *p, false, nil
}
