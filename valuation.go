package brokerage

import "sort"

// RunningBalance pairs a transaction with the cash balance after applying it,
// in chronological order. It backs statement views that show a running total
// next to each entry.
type RunningBalance struct {
	Transaction Transaction
	Balance     Money
}

// chronological returns the account's transactions sorted by date. The sort
// is stable, so transactions on the same day keep their insertion order; this
// fixes the running balance shown per transaction, though not the final
// total.
func chronological(txs []Transaction, asOf Date) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if !asOf.IsZero() && tx.Date.After(asOf) {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// CashBalance folds the classified cash effect of the account's transactions
// up to asOf (zero asOf means all of them) in chronological order. Deposits,
// dividends and sells credit cash; withdrawals, buys and fees debit it.
func (j *Journal) CashBalance(a *Account, asOf Date) Money {
	balance := M(0, "")
	for _, tx := range chronological(a.Transactions, asOf) {
		switch tx.Kind.effect().cash {
		case +1:
			balance = balance.Add(tx.Value)
		case -1:
			balance = balance.Sub(tx.Value)
		}
	}
	return balance
}

// RunningBalances returns the account's transactions up to asOf in
// chronological order, each with the cash balance after it.
func (j *Journal) RunningBalances(a *Account, asOf Date) []RunningBalance {
	balance := M(0, "")
	txs := chronological(a.Transactions, asOf)
	out := make([]RunningBalance, 0, len(txs))
	for _, tx := range txs {
		switch tx.Kind.effect().cash {
		case +1:
			balance = balance.Add(tx.Value)
		case -1:
			balance = balance.Sub(tx.Value)
		}
		out = append(out, RunningBalance{Transaction: tx, Balance: balance})
	}
	return out
}

// PositionValue marks the account's live positions to market as of asOf:
// quantity times the newest price not after asOf, summed across positions.
// A position whose security has no price record contributes zero; a just
// opened position may simply have no quote yet.
func (j *Journal) PositionValue(a *Account, asOf Date) Money {
	total := M(0, "")
	for _, pos := range j.positions.For(a.ID) {
		price := j.prices.Newest(pos.SecurityID, asOf)
		if price.IsZero() {
			continue
		}
		total = total.Add(price.Mul(pos.Quantity))
	}
	return total
}

// AccountValue is the account's total economic value as of asOf: cash plus
// mark-to-market of its positions.
func (j *Journal) AccountValue(a *Account, asOf Date) Money {
	return j.CashBalance(a, asOf).Add(j.PositionValue(a, asOf))
}
