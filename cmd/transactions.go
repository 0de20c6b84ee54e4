package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/mstrand/brokerage"
	"github.com/mstrand/brokerage/renderer"
)

// recordTransaction opens the journal, resolves the account and records the
// built transaction, reporting the outcome the same way for every kind.
func recordTransaction(account string, build func(j *brokerage.Journal) (brokerage.Transaction, error)) subcommands.ExitStatus {
	j, err := openJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	a, err := findAccount(j, account)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx, err := build(j)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	stored, err := j.AddTransaction(a, tx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	symbol, _ := j.SymbolFor(stored.SecurityID)
	fmt.Printf("%s: %s (id %d)\n", stored.Date, renderer.Transaction(stored, symbol), stored.ID)
	return subcommands.ExitSuccess
}

// --- deposit, withdraw, fee ---

// cashCmd records one of the pure cash transaction kinds; they share flags
// and behavior and differ only in the kind.
type cashCmd struct {
	kind     brokerage.TxType
	synopsis string

	account  string
	date     string
	value    float64
	currency string
}

func newDepositCmd() *cashCmd {
	return &cashCmd{kind: brokerage.TxDeposit, synopsis: "deposit cash into an account"}
}
func newWithdrawCmd() *cashCmd {
	return &cashCmd{kind: brokerage.TxWithdrawal, synopsis: "withdraw cash from an account"}
}
func newFeeCmd() *cashCmd {
	return &cashCmd{kind: brokerage.TxFee, synopsis: "record an account fee"}
}

func (c *cashCmd) Name() string {
	if c.kind == brokerage.TxWithdrawal {
		return "withdraw"
	}
	return string(c.kind)
}
func (c *cashCmd) Synopsis() string { return c.synopsis }
func (c *cashCmd) Usage() string {
	return fmt.Sprintf(`bks %s [-a <account>] -v <value> [-d <date>] [-c <currency>]

  %s
`, c.Name(), strings.ToUpper(c.synopsis[:1])+c.synopsis[1:])
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id")
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	f.Float64Var(&c.value, "v", 0, "Amount of cash")
	f.StringVar(&c.currency, "c", "USD", "Currency code")
}

func (c *cashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.value <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return recordTransaction(c.account, func(*brokerage.Journal) (brokerage.Transaction, error) {
		value := brokerage.M(c.value, c.currency)
		switch c.kind {
		case brokerage.TxDeposit:
			return brokerage.NewDeposit(day, value), nil
		case brokerage.TxWithdrawal:
			return brokerage.NewWithdrawal(day, value), nil
		default:
			return brokerage.NewFee(day, value), nil
		}
	})
}

// --- dividend ---

type dividendCmd struct {
	account  string
	date     string
	security string
	value    float64
	currency string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a cash dividend paid by a security" }
func (*dividendCmd) Usage() string {
	return `bks dividend [-a <account>] -s <security> -v <value> [-d <date>] [-c <currency>]

  Records a dividend. The cash is credited to the account; the position in
  the paying security is unchanged.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id")
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	f.StringVar(&c.security, "s", "", "Ticker symbol of the paying security")
	f.Float64Var(&c.value, "v", 0, "Dividend amount")
	f.StringVar(&c.currency, "c", "USD", "Currency code")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || c.value <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return recordTransaction(c.account, func(j *brokerage.Journal) (brokerage.Transaction, error) {
		sec, err := findSecurity(j, c.security)
		if err != nil {
			return brokerage.Transaction{}, err
		}
		return brokerage.NewDividend(day, sec.ID, brokerage.M(c.value, c.currency)), nil
	})
}

// --- buy and sell ---

type tradeCmd struct {
	sell bool

	account  string
	date     string
	security string
	quantity float64
	value    float64
	fee      float64
	currency string
}

func (c *tradeCmd) Name() string {
	if c.sell {
		return "sell"
	}
	return "buy"
}
func (c *tradeCmd) Synopsis() string {
	if c.sell {
		return "sell shares, closing or reducing a position"
	}
	return "purchase shares to open or add to a position"
}
func (c *tradeCmd) Usage() string {
	if c.sell {
		return `bks sell [-a <account>] -s <security> -q <quantity> -v <value> [-f <fee>] [-d <date>] [-c <currency>]

  Sells shares of a security. The value is the net cash received, fees
  already deducted. Selling more than is held opens a short position.
`
	}
	return `bks buy [-a <account>] -s <security> -q <quantity> -v <value> [-f <fee>] [-d <date>] [-c <currency>]

  Purchases shares of a security. The value is the total cash spent, fees
  included.
`
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id")
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	f.StringVar(&c.security, "s", "", "Ticker symbol")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.value, "v", 0, "Total cash value of the trade")
	f.Float64Var(&c.fee, "f", 0, "Trading fee included in the value")
	f.StringVar(&c.currency, "c", "USD", "Currency code")
}

func (c *tradeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || c.quantity <= 0 || c.value <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return recordTransaction(c.account, func(j *brokerage.Journal) (brokerage.Transaction, error) {
		sec, err := findSecurity(j, c.security)
		if err != nil {
			return brokerage.Transaction{}, err
		}
		quantity := brokerage.Q(c.quantity)
		value := brokerage.M(c.value, c.currency)
		fee := brokerage.M(c.fee, c.currency)
		if c.sell {
			return brokerage.NewSell(day, sec.ID, quantity, value, fee), nil
		}
		return brokerage.NewBuy(day, sec.ID, quantity, value, fee), nil
	})
}

// --- delete-tx ---

type deleteTxCmd struct {
	account string
	id      int64
}

func (*deleteTxCmd) Name() string     { return "delete-tx" }
func (*deleteTxCmd) Synopsis() string { return "delete a transaction, reversing its effects" }
func (*deleteTxCmd) Usage() string {
	return `bks delete-tx [-a <account>] -id <transaction id>

  Deletes a transaction. Its position effect is reversed exactly; recorded
  prices are kept. Deletion is permanent, there is no undo.
`
}

func (c *deleteTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id")
	f.Int64Var(&c.id, "id", 0, "Transaction id (see bks tx)")
}

func (c *deleteTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
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
	tx, ok := a.Transaction(c.id)
	if !ok {
		fmt.Fprintf(os.Stderr, "no transaction %d in account %q\n", c.id, a.Name)
		return subcommands.ExitFailure
	}
	if _, err := j.DeleteTransaction(tx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted transaction %d\n", c.id)
	return subcommands.ExitSuccess
}

// --- tx ---

type txCmd struct {
	account string
	date    string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of an account" }
func (*txCmd) Usage() string {
	return `bks tx [-a <account>] [-d <date>]

  Lists the account's transactions in chronological order with a running
  cash balance, up to the given date.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id")
	f.StringVar(&c.date, "d", "", "Only list transactions up to this date")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	for _, rb := range j.RunningBalances(a, asOf) {
		symbol, _ := j.SymbolFor(rb.Transaction.SecurityID)
		fmt.Printf("%d\t%s\t%s\t%s\n", rb.Transaction.ID, rb.Transaction.Date, renderer.Transaction(rb.Transaction, symbol), rb.Balance)
	}
	return subcommands.ExitSuccess
}
