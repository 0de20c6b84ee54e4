package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mstrand/brokerage"
)

// --- add-security ---

type addSecurityCmd struct {
	symbol string
	name   string
}

func (*addSecurityCmd) Name() string     { return "add-security" }
func (*addSecurityCmd) Synopsis() string { return "declare a security so it can be traded and priced" }
func (*addSecurityCmd) Usage() string {
	return `bks add-security -s <symbol> [-n <name>]

  Declares a security. Trades and price records always reference a declared
  security.
`
}

func (c *addSecurityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol")
	f.StringVar(&c.name, "n", "", "Security name")
}

func (c *addSecurityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	j, err := openJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if _, err := findSecurity(j, c.symbol); err == nil {
		fmt.Fprintf(os.Stderr, "security %q is already declared\n", c.symbol)
		return subcommands.ExitFailure
	}
	sec := &brokerage.Security{Symbol: c.symbol, Name: c.name}
	if err := j.AddSecurity(sec); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Declared security %s (id %d)\n", sec.Symbol, sec.ID)
	return subcommands.ExitSuccess
}

// --- securities ---

type securitiesCmd struct{}

func (*securitiesCmd) Name() string     { return "securities" }
func (*securitiesCmd) Synopsis() string { return "list declared securities" }
func (*securitiesCmd) Usage() string {
	return `bks securities

  Lists every declared security with its latest known price.
`
}

func (c *securitiesCmd) SetFlags(f *flag.FlagSet) {}

func (c *securitiesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := openJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for _, sec := range j.Securities() {
		price := "n/a"
		if p := j.NewestPrice(sec.ID, brokerage.Date{}); !p.IsZero() {
			price = p.String()
		}
		fmt.Printf("%d\t%s\t%s\t%s\n", sec.ID, sec.Symbol, sec.Name, price)
	}
	return subcommands.ExitSuccess
}
