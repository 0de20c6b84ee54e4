package renderer

import (
	"strings"
	"testing"

	"github.com/mstrand/brokerage"
)

func testJournal(t *testing.T) (*brokerage.Journal, *brokerage.Account) {
	t.Helper()
	j, err := brokerage.NewJournal(brokerage.NewMemStore())
	if err != nil {
		t.Fatal(err)
	}
	a := &brokerage.Account{Name: "Main", Institution: "Test Brokers"}
	if err := j.AddAccount(a); err != nil {
		t.Fatal(err)
	}
	sec := &brokerage.Security{Symbol: "AAPL", Name: "Apple Inc."}
	if err := j.AddSecurity(sec); err != nil {
		t.Fatal(err)
	}

	day := brokerage.MustParseDate
	usd := func(v float64) brokerage.Money { return brokerage.M(v, "USD") }
	txs := []brokerage.Transaction{
		brokerage.NewDeposit(day("2024-03-01"), usd(1000)),
		brokerage.NewBuy(day("2024-03-04"), sec.ID, brokerage.Q(10), usd(500), usd(1)),
	}
	for _, tx := range txs {
		if _, err := j.AddTransaction(a, tx); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := j.RecordPrice(sec.ID, day("2024-03-05"), usd(52), true); err != nil {
		t.Fatal(err)
	}
	return j, a
}

func TestStatementMarkdown(t *testing.T) {
	j, a := testJournal(t)
	s := NewStatement(j, a, brokerage.MustParseDate("2024-03-31"))
	md := StatementMarkdown(s)

	for _, want := range []string{
		"# Statement: Main — Test Brokers",
		"As of 2024-03-31",
		"Deposited $1,000.00",
		"Bought 10 AAPL for $500.00 (fee $1.00)",
		"| AAPL | 10 | $52.00 | $520.00 |",
		"| Cash | $500.00 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("statement markdown is missing %q\n%s", want, md)
		}
	}
}

func TestStatement_RunningBalances(t *testing.T) {
	j, a := testJournal(t)
	s := NewStatement(j, a, brokerage.Date{})

	if len(s.Lines) != 2 {
		t.Fatalf("statement has %d lines, want 2", len(s.Lines))
	}
	if !s.Lines[0].Balance.Equal(brokerage.M(1000, "USD")) {
		t.Errorf("balance after deposit = %s, want $1000", s.Lines[0].Balance)
	}
	if !s.Lines[1].Balance.Equal(brokerage.M(500, "USD")) {
		t.Errorf("balance after buy = %s, want $500", s.Lines[1].Balance)
	}
}

func TestStatement_Empty(t *testing.T) {
	j, err := brokerage.NewJournal(brokerage.NewMemStore())
	if err != nil {
		t.Fatal(err)
	}
	a := &brokerage.Account{Name: "Main"}
	if err := j.AddAccount(a); err != nil {
		t.Fatal(err)
	}
	md := StatementMarkdown(NewStatement(j, a, brokerage.Date{}))
	if !strings.Contains(md, "No transactions.") {
		t.Errorf("empty statement does not say so:\n%s", md)
	}
}

func TestTransactionRendering(t *testing.T) {
	day := brokerage.MustParseDate("2024-03-01")
	usd := func(v float64) brokerage.Money { return brokerage.M(v, "USD") }

	testCases := []struct {
		tx     brokerage.Transaction
		symbol string
		want   string
	}{
		{brokerage.NewDeposit(day, usd(25)), "", "Deposited $25.00"},
		{brokerage.NewWithdrawal(day, usd(25)), "", "Withdrew $25.00"},
		{brokerage.NewFee(day, usd(1.27)), "", "Fee of $1.27"},
		{brokerage.NewDividend(day, 1, usd(2.50)), "AAPL", "Dividend of $2.50 on AAPL"},
		{brokerage.NewBuy(day, 1, brokerage.Q(2), usd(10.55), usd(0.33)), "AAPL", "Bought 2 AAPL for $10.55 (fee $0.33)"},
		{brokerage.NewSell(day, 1, brokerage.Q(2), usd(23.42), usd(0.38)), "AAPL", "Sold 2 AAPL for $23.42 (fee $0.38)"},
		{brokerage.NewStockSplit(day, 1), "AAPL", "Stock split on AAPL"},
	}
	for _, tc := range testCases {
		if got := Transaction(tc.tx, tc.symbol); got != tc.want {
			t.Errorf("Transaction(%s) = %q, want %q", tc.tx.Kind, got, tc.want)
		}
	}
}
