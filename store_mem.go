package brokerage

import "sort"

// MemStore is an in-memory Store. It backs tests and serves as the table
// model for FileStore: one map per entity, IDs assigned from a per-table
// counter so that ID order is insertion order.
type MemStore struct {
	accounts     map[int64]Account
	transactions map[int64]Transaction
	positions    map[int64]Position
	prices       map[int64]Price
	securities   map[int64]Security
	lots         map[int64]LotAssignment
	lastID       map[string]int64
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		accounts:     make(map[int64]Account),
		transactions: make(map[int64]Transaction),
		positions:    make(map[int64]Position),
		prices:       make(map[int64]Price),
		securities:   make(map[int64]Security),
		lots:         make(map[int64]LotAssignment),
		lastID:       make(map[string]int64),
	}
}

func (s *MemStore) nextID(table string) int64 {
	s.lastID[table]++
	return s.lastID[table]
}

// track keeps the counter ahead of externally assigned IDs (loaded files).
func (s *MemStore) track(table string, id int64) {
	if id > s.lastID[table] {
		s.lastID[table] = id
	}
}

func (s *MemStore) Accounts(openOnly bool) ([]*Account, error) {
	var out []*Account
	for _, a := range s.accounts {
		if openOnly && a.Closed {
			continue
		}
		acct := a
		acct.Transactions = s.accountTransactions(a.ID)
		out = append(out, &acct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) accountTransactions(account int64) []Transaction {
	var txs []Transaction
	for _, tx := range s.transactions {
		if tx.AccountID == account {
			txs = append(txs, tx)
		}
	}
	// ID order is insertion order.
	sort.Slice(txs, func(i, j int) bool { return txs[i].ID < txs[j].ID })
	return txs
}

func (s *MemStore) Transactions() ([]Transaction, error) {
	out := make([]Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Positions() ([]Position, error) {
	out := make([]Position, 0, len(s.positions))
	for _, p := range s.positions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Prices() ([]Price, error) {
	out := make([]Price, 0, len(s.prices))
	for _, p := range s.prices {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Securities() ([]Security, error) {
	out := make([]Security, 0, len(s.securities))
	for _, sec := range s.securities {
		out = append(out, sec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) LotAssignments() ([]LotAssignment, error) {
	out := make([]LotAssignment, 0, len(s.lots))
	for _, l := range s.lots {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) SaveAccount(a *Account) error {
	if a.ID == 0 {
		a.ID = s.nextID("accounts")
	}
	s.track("accounts", a.ID)
	cp := *a
	cp.Transactions = nil // transactions are rows of their own table
	s.accounts[a.ID] = cp
	return nil
}

func (s *MemStore) RemoveAccount(a *Account) error {
	delete(s.accounts, a.ID)
	return nil
}

func (s *MemStore) SaveTransaction(tx *Transaction) error {
	if tx.ID == 0 {
		tx.ID = s.nextID("transactions")
	}
	s.track("transactions", tx.ID)
	s.transactions[tx.ID] = *tx
	return nil
}

func (s *MemStore) RemoveTransaction(tx Transaction) error {
	delete(s.transactions, tx.ID)
	return nil
}

func (s *MemStore) SavePosition(p *Position) error {
	if p.ID == 0 {
		p.ID = s.nextID("positions")
	}
	s.track("positions", p.ID)
	s.positions[p.ID] = *p
	return nil
}

func (s *MemStore) RemovePosition(p Position) error {
	delete(s.positions, p.ID)
	return nil
}

func (s *MemStore) SaveSecurity(sec *Security) error {
	if sec.ID == 0 {
		sec.ID = s.nextID("securities")
	}
	s.track("securities", sec.ID)
	s.securities[sec.ID] = *sec
	return nil
}

func (s *MemStore) RemoveSecurity(sec Security) error {
	delete(s.securities, sec.ID)
	return nil
}

func (s *MemStore) SavePrice(p *Price) error {
	if p.ID == 0 {
		p.ID = s.nextID("prices")
	}
	s.track("prices", p.ID)
	s.prices[p.ID] = *p
	return nil
}

func (s *MemStore) SaveLotAssignment(l *LotAssignment) error {
	if l.ID == 0 {
		l.ID = s.nextID("lots")
	}
	s.track("lots", l.ID)
	s.lots[l.ID] = *l
	return nil
}
