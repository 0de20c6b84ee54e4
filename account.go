package brokerage

// Account is an investment account: display metadata plus the journal of its
// transactions in insertion order.
//
// An account's cash balance is never stored: it is always derived from the
// classified cash effects of its transactions, see Journal.CashBalance.
type Account struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Institution string `json:"institution,omitempty"`
	Closed      bool   `json:"closed,omitempty"`

	// Transactions in insertion order, which is independent of transaction
	// date. Callers needing chronological iteration must sort explicitly.
	Transactions []Transaction `json:"-"`
}

// Transaction returns the account's transaction with the given id, or false.
func (a *Account) Transaction(id int64) (Transaction, bool) {
	for _, tx := range a.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}
