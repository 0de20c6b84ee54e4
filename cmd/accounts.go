package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mstrand/brokerage"
)

// --- add-account ---

type addAccountCmd struct {
	name        string
	institution string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create a new investment account" }
func (*addAccountCmd) Usage() string {
	return `bks add-account -n <name> [-i <institution>]

  Creates a new account. Transactions are always recorded against an account.
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Account name")
	f.StringVar(&c.institution, "i", "", "Institution holding the account")
}

func (c *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	j, err := openJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	a := &brokerage.Account{Name: c.name, Institution: c.institution}
	if err := j.AddAccount(a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created account %q (id %d)\n", a.Name, a.ID)
	return subcommands.ExitSuccess
}

// --- accounts ---

type accountsCmd struct {
	all bool
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts" }
func (*accountsCmd) Usage() string {
	return `bks accounts [-all]

  Lists open accounts; -all includes closed ones.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Include closed accounts")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := openJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for _, a := range j.Accounts(!c.all) {
		status := ""
		if a.Closed {
			status = " (closed)"
		}
		fmt.Printf("%d\t%s\t%s%s\n", a.ID, a.Name, a.Institution, status)
	}
	return subcommands.ExitSuccess
}

// --- close-account ---

type closeAccountCmd struct {
	account string
}

func (*closeAccountCmd) Name() string     { return "close-account" }
func (*closeAccountCmd) Synopsis() string { return "mark an account as closed" }
func (*closeAccountCmd) Usage() string {
	return `bks close-account -a <account>

  Marks an account as closed. Its history is kept; it only drops out of the
  default account listings.
`
}

func (c *closeAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id")
}

func (c *closeAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	a.Closed = true
	if err := j.UpdateAccount(a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Closed account %q\n", a.Name)
	return subcommands.ExitSuccess
}
