package brokerage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FileStore is a Store persisting each entity table as a JSONL file in a
// directory. Every save or remove rewrites the affected table with an atomic
// write-temp-then-rename, so a logical operation commits entirely or not at
// all from the engine's point of view.
type FileStore struct {
	dir string
	mem *MemStore
}

// table file names inside the store directory.
const (
	accountsFile     = "accounts.jsonl"
	transactionsFile = "transactions.jsonl"
	positionsFile    = "positions.jsonl"
	pricesFile       = "prices.jsonl"
	securitiesFile   = "securities.jsonl"
	lotsFile         = "lots.jsonl"
)

// OpenFileStore opens (or initializes) a store directory and loads every
// table. A missing directory or missing table file is an empty table, not an
// error.
func OpenFileStore(dir string) (*FileStore, error) {
	s := &FileStore{dir: dir, mem: NewMemStore()}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create store directory %q: %w", dir, err)
	}

	if err := readTable(filepath.Join(dir, accountsFile), func(a Account) {
		s.mem.accounts[a.ID] = a
		s.mem.track("accounts", a.ID)
	}); err != nil {
		return nil, err
	}
	if err := readTable(filepath.Join(dir, transactionsFile), func(tx Transaction) {
		s.mem.transactions[tx.ID] = tx
		s.mem.track("transactions", tx.ID)
	}); err != nil {
		return nil, err
	}
	if err := readTable(filepath.Join(dir, positionsFile), func(p Position) {
		s.mem.positions[p.ID] = p
		s.mem.track("positions", p.ID)
	}); err != nil {
		return nil, err
	}
	if err := readTable(filepath.Join(dir, pricesFile), func(p Price) {
		s.mem.prices[p.ID] = p
		s.mem.track("prices", p.ID)
	}); err != nil {
		return nil, err
	}
	if err := readTable(filepath.Join(dir, securitiesFile), func(sec Security) {
		s.mem.securities[sec.ID] = sec
		s.mem.track("securities", sec.ID)
	}); err != nil {
		return nil, err
	}
	if err := readTable(filepath.Join(dir, lotsFile), func(l LotAssignment) {
		s.mem.lots[l.ID] = l
		s.mem.track("lots", l.ID)
	}); err != nil {
		return nil, err
	}
	return s, nil
}

// readTable decodes one JSONL file line by line into rows of type T.
func readTable[T any](path string, add func(T)) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var row T
		if err := json.Unmarshal(line, &row); err != nil {
			return fmt.Errorf("could not decode line in %s: %w", filepath.Base(path), err)
		}
		add(row)
	}
	return scanner.Err()
}

// writeTable rewrites one JSONL file atomically: write a temp file, sync,
// then rename it over the table.
func writeTable[T any](path string, rows []T) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, row := range rows {
		line, err := json.Marshal(row)
		if err != nil {
			f.Close()
			return err
		}
		w.Write(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) flushAccounts() error {
	rows := make([]Account, 0, len(s.mem.accounts))
	for _, a := range s.mem.accounts {
		rows = append(rows, a)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return writeTable(filepath.Join(s.dir, accountsFile), rows)
}

func (s *FileStore) flushTransactions() error {
	rows, _ := s.mem.Transactions()
	return writeTable(filepath.Join(s.dir, transactionsFile), rows)
}

func (s *FileStore) flushPositions() error {
	rows, _ := s.mem.Positions()
	return writeTable(filepath.Join(s.dir, positionsFile), rows)
}

func (s *FileStore) flushPrices() error {
	rows, _ := s.mem.Prices()
	return writeTable(filepath.Join(s.dir, pricesFile), rows)
}

func (s *FileStore) flushSecurities() error {
	rows, _ := s.mem.Securities()
	return writeTable(filepath.Join(s.dir, securitiesFile), rows)
}

func (s *FileStore) flushLots() error {
	rows, _ := s.mem.LotAssignments()
	return writeTable(filepath.Join(s.dir, lotsFile), rows)
}

func (s *FileStore) Accounts(openOnly bool) ([]*Account, error) { return s.mem.Accounts(openOnly) }
func (s *FileStore) Transactions() ([]Transaction, error)       { return s.mem.Transactions() }
func (s *FileStore) Positions() ([]Position, error)             { return s.mem.Positions() }
func (s *FileStore) Prices() ([]Price, error)                   { return s.mem.Prices() }
func (s *FileStore) Securities() ([]Security, error)            { return s.mem.Securities() }
func (s *FileStore) LotAssignments() ([]LotAssignment, error)   { return s.mem.LotAssignments() }

func (s *FileStore) SaveAccount(a *Account) error {
	if err := s.mem.SaveAccount(a); err != nil {
		return err
	}
	return s.flushAccounts()
}

func (s *FileStore) RemoveAccount(a *Account) error {
	if err := s.mem.RemoveAccount(a); err != nil {
		return err
	}
	return s.flushAccounts()
}

func (s *FileStore) SaveTransaction(tx *Transaction) error {
	if err := s.mem.SaveTransaction(tx); err != nil {
		return err
	}
	return s.flushTransactions()
}

func (s *FileStore) RemoveTransaction(tx Transaction) error {
	if err := s.mem.RemoveTransaction(tx); err != nil {
		return err
	}
	return s.flushTransactions()
}

func (s *FileStore) SavePosition(p *Position) error {
	if err := s.mem.SavePosition(p); err != nil {
		return err
	}
	return s.flushPositions()
}

func (s *FileStore) RemovePosition(p Position) error {
	if err := s.mem.RemovePosition(p); err != nil {
		return err
	}
	return s.flushPositions()
}

func (s *FileStore) SaveSecurity(sec *Security) error {
	if err := s.mem.SaveSecurity(sec); err != nil {
		return err
	}
	return s.flushSecurities()
}

func (s *FileStore) RemoveSecurity(sec Security) error {
	if err := s.mem.RemoveSecurity(sec); err != nil {
		return err
	}
	return s.flushSecurities()
}

func (s *FileStore) SavePrice(p *Price) error {
	if err := s.mem.SavePrice(p); err != nil {
		return err
	}
	return s.flushPrices()
}

func (s *FileStore) SaveLotAssignment(l *LotAssignment) error {
	if err := s.mem.SaveLotAssignment(l); err != nil {
		return err
	}
	return s.flushLots()
}
