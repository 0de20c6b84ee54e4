package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mstrand/brokerage/renderer"
)

// --- positions ---

type positionsCmd struct {
	account string
	date    string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "list the live positions of an account" }
func (*positionsCmd) Usage() string {
	return `bks positions [-a <account>] [-d <date>]

  Lists the account's live positions with their latest known price and
  value. Negative quantities are short positions.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id")
	f.StringVar(&c.date, "d", "", "Value positions as of this date")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := openJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	a, err := findAccount(j, c.account)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	asOf, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	for _, pos := range j.PositionsFor(a.ID) {
		symbol, _ := j.SymbolFor(pos.SecurityID)
		if price := j.NewestPrice(pos.SecurityID, asOf); !price.IsZero() {
			fmt.Printf("%s\t%s\t%s\t%s\n", symbol, pos.Quantity, price, price.Mul(pos.Quantity))
		} else {
			fmt.Printf("%s\t%s\tn/a\tn/a\n", symbol, pos.Quantity)
		}
	}
	return subcommands.ExitSuccess
}

// --- value ---

type valueCmd struct {
	account string
	date    string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "show the total value of an account" }
func (*valueCmd) Usage() string {
	return `bks value [-a <account>] [-d <date>]

  Shows the account's cash balance, the mark-to-market value of its
  positions and their sum, as of the given date.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id")
	f.StringVar(&c.date, "d", "", "Value the account as of this date")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := openJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	a, err := findAccount(j, c.account)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	asOf, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	fmt.Printf("Cash:      %s\n", j.CashBalance(a, asOf))
	fmt.Printf("Positions: %s\n", j.PositionValue(a, asOf))
	fmt.Printf("Total:     %s\n", j.AccountValue(a, asOf))
	return subcommands.ExitSuccess
}

// --- statement ---

type statementCmd struct {
	account string
	date    string
	raw     bool
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "render a full account statement" }
func (*statementCmd) Usage() string {
	return `bks statement [-a <account>] [-d <date>] [-raw]

  Renders an account statement: the journal with running balances, the live
  positions marked to market, and the account totals. -raw prints the
  markdown source instead of the styled terminal output.
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id")
	f.StringVar(&c.date, "d", "", "Statement date (defaults to today)")
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown")
}

func (c *statementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := openJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	a, err := findAccount(j, c.account)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	asOf, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	md := renderer.StatementMarkdown(renderer.NewStatement(j, a, asOf))
	if c.raw {
		fmt.Print(md)
	} else {
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}
