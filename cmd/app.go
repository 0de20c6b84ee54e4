// Package cmd implements the CLI application to manage brokerage accounts.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/mstrand/brokerage"
)

// Commands lists every subcommand of the application. A main package
// registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&addAccountCmd{},
	&accountsCmd{},
	&closeAccountCmd{},

	&addSecurityCmd{},
	&securitiesCmd{},

	newDepositCmd(),
	newWithdrawCmd(),
	newFeeCmd(),
	&dividendCmd{},
	&tradeCmd{},
	&tradeCmd{sell: true},
	&deleteTxCmd{},
	&txCmd{},

	&recordPriceCmd{},
	&pricesCmd{},
	&importPricesCmd{},

	&positionsCmd{},
	&valueCmd{},
	&statementCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var storeDir = flag.String("store", "", "Path to the store directory (defaults to $BROKERAGE_STORE, then .brokerage)")

// storePath resolves the store directory: flag first, then the environment
// (optionally seeded from a .env file), then the default.
func storePath() string {
	if *storeDir != "" {
		return *storeDir
	}
	if err := godotenv.Load(); err == nil {
		log.Println("loaded settings from .env")
	}
	if dir := os.Getenv("BROKERAGE_STORE"); dir != "" {
		return dir
	}
	return ".brokerage"
}

// openJournal is the central function to open the journal over the app store.
func openJournal() (*brokerage.Journal, error) {
	store, err := brokerage.OpenFileStore(storePath())
	if err != nil {
		return nil, err
	}
	return brokerage.NewJournal(store)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the terminal renderer is not available.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// findAccount resolves an account by name or numeric id. An empty selector is
// accepted when there is exactly one open account.
func findAccount(j *brokerage.Journal, selector string) (*brokerage.Account, error) {
	if selector == "" {
		accounts := j.Accounts(true)
		if len(accounts) == 1 {
			return accounts[0], nil
		}
		return nil, fmt.Errorf("-a is required when there is not exactly one open account")
	}
	if id, err := strconv.ParseInt(selector, 10, 64); err == nil {
		if a, ok := j.Account(id); ok {
			return a, nil
		}
	}
	for _, a := range j.Accounts(false) {
		if a.Name == selector {
			return a, nil
		}
	}
	return nil, fmt.Errorf("no account named %q", selector)
}

// findSecurity resolves a security by its ticker symbol.
func findSecurity(j *brokerage.Journal, symbol string) (brokerage.Security, error) {
	for _, sec := range j.Securities() {
		if sec.Symbol == symbol {
			return sec, nil
		}
	}
	return brokerage.Security{}, fmt.Errorf("no security with symbol %q, declare it first with add-security", symbol)
}

// parseDay parses a date flag, an empty string meaning the zero date.
func parseDay(s string) (brokerage.Date, error) {
	if s == "" {
		return brokerage.Date{}, nil
	}
	return brokerage.ParseDate(s)
}
