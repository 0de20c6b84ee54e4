package brokerage

// LotAssignment links a Buy transaction to a Sell transaction with a lot
// quantity, for tax-lot accounting. The reconciliation engine does not
// exercise lots; the shape is preserved for the persistence layer only.
type LotAssignment struct {
	ID                int64    `json:"id"`
	BuyTransactionID  int64    `json:"buy"`
	SellTransactionID int64    `json:"sell"`
	Quantity          Quantity `json:"quantity"`
}

// Store is the persistence collaborator of the engine. Implementations own
// connections, schema and query construction; the engine only issues keyed
// load and save operations and assumes each call is atomic and synchronous,
// with read-your-writes consistency for a single caller.
//
// Save methods assign the entity's ID when it is zero.
type Store interface {
	// Accounts returns all accounts (optionally only open ones), each with
	// its Transactions populated in insertion order.
	Accounts(openOnly bool) ([]*Account, error)
	Transactions() ([]Transaction, error)
	Positions() ([]Position, error)
	Prices() ([]Price, error)
	Securities() ([]Security, error)
	LotAssignments() ([]LotAssignment, error)

	SaveAccount(*Account) error
	RemoveAccount(*Account) error
	SaveTransaction(*Transaction) error
	RemoveTransaction(Transaction) error
	SavePosition(*Position) error
	RemovePosition(Position) error
	SaveSecurity(*Security) error
	RemoveSecurity(Security) error
	SavePrice(*Price) error
	SaveLotAssignment(*LotAssignment) error
}
