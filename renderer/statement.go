package renderer

import (
	"github.com/mstrand/brokerage"
)

// Statement is the view model of an account statement: the journal with
// running balances, the live positions marked to market, and the totals.
type Statement struct {
	Account     string
	Institution string
	AsOf        string

	Lines     []StatementLine
	Positions []PositionLine

	CashBalance   brokerage.Money
	PositionValue brokerage.Money
	AccountValue  brokerage.Money
}

// StatementLine is one journal entry with the cash balance after it.
type StatementLine struct {
	When    string
	Detail  string
	Balance brokerage.Money
}

// PositionLine is one live position with its latest known price.
type PositionLine struct {
	Symbol   string
	Quantity brokerage.Quantity
	Price    brokerage.Money
	Value    brokerage.Money
	Priced   bool // false when the security has no price record yet
}

// NewStatement assembles the statement view of an account as of the given
// date; a zero asOf means "now".
func NewStatement(j *brokerage.Journal, a *brokerage.Account, asOf brokerage.Date) *Statement {
	s := &Statement{
		Account:       a.Name,
		Institution:   a.Institution,
		CashBalance:   j.CashBalance(a, asOf),
		PositionValue: j.PositionValue(a, asOf),
		AccountValue:  j.AccountValue(a, asOf),
	}
	if asOf.IsZero() {
		s.AsOf = brokerage.Today().String()
	} else {
		s.AsOf = asOf.String()
	}

	for _, rb := range j.RunningBalances(a, asOf) {
		symbol, _ := j.SymbolFor(rb.Transaction.SecurityID)
		s.Lines = append(s.Lines, StatementLine{
			When:    rb.Transaction.Date.String(),
			Detail:  Transaction(rb.Transaction, symbol),
			Balance: rb.Balance,
		})
	}

	for _, pos := range j.PositionsFor(a.ID) {
		symbol, _ := j.SymbolFor(pos.SecurityID)
		line := PositionLine{Symbol: symbol, Quantity: pos.Quantity}
		if price := j.NewestPrice(pos.SecurityID, asOf); !price.IsZero() {
			line.Price = price
			line.Value = price.Mul(pos.Quantity)
			line.Priced = true
		}
		s.Positions = append(s.Positions, line)
	}
	return s
}

// StatementMarkdown renders the statement to a markdown string.
func StatementMarkdown(s *Statement) string {
	partials := map[string]string{
		"statement_transactions": "statement_transactions.md",
		"statement_positions":    "statement_positions.md",
	}
	return renderTemplate("statement", "statement.md", partials, s)
}
