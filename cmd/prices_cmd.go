package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
	"github.com/mstrand/brokerage"
)

// --- record-price ---

type recordPriceCmd struct {
	security string
	date     string
	price    float64
	currency string
	intraday bool
}

func (*recordPriceCmd) Name() string     { return "record-price" }
func (*recordPriceCmd) Synopsis() string { return "record a quoted price for a security" }
func (*recordPriceCmd) Usage() string {
	return `bks record-price -s <security> -p <price> [-d <date>] [-intraday] [-c <currency>]

  Records a price. Prices are closing prices by default; -intraday records a
  provisional quote that a later closing price may replace. A closing price
  already on the books is never replaced by an intraday one.
`
}

func (c *recordPriceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.security, "s", "", "Ticker symbol")
	f.StringVar(&c.date, "d", "", "Quote date (YYYY-MM-DD, defaults to today)")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.StringVar(&c.currency, "c", "USD", "Currency code")
	f.BoolVar(&c.intraday, "intraday", false, "Record an intraday quote instead of a closing price")
}

func (c *recordPriceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	j, err := openJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	sec, err := findSecurity(j, c.security)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if day.IsZero() {
		day = brokerage.Today()
	}
	rec, err := j.RecordPrice(sec.ID, day, brokerage.M(c.price, c.currency), !c.intraday)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: %s at %s\n", rec.Date, sec.Symbol, rec.Amount)
	return subcommands.ExitSuccess
}

// --- prices ---

type pricesCmd struct {
	security string
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "list the recorded prices of a security" }
func (*pricesCmd) Usage() string {
	return `bks prices -s <security>

  Lists every recorded price of a security in chronological order.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.security, "s", "", "Ticker symbol")
}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	j, err := openJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	sec, err := findSecurity(j, c.security)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for _, p := range j.SecurityPrices(sec.ID) {
		class := "close"
		if !p.Closing {
			class = "intraday"
		}
		fmt.Printf("%s\t%s\t%s\n", p.Date, p.Amount, class)
	}
	return subcommands.ExitSuccess
}

// --- import-prices ---

type importPricesCmd struct {
	security string
	file     string
	url      string
	path     string
	currency string
}

func (*importPricesCmd) Name() string     { return "import-prices" }
func (*importPricesCmd) Synopsis() string { return "import closing prices from a JSON quote file" }
func (*importPricesCmd) Usage() string {
	return `bks import-prices -s <security> (-file <quotes.json> | -url <address>) [-path <jsonpath>] [-c <currency>]

  Imports daily closing prices from a JSON quote feed, read from a file or
  fetched from a provider URL. The JSONPath expression selects the list of
  quote objects; each object carries a "date" and a "close" field.
`
}

func (c *importPricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.security, "s", "", "Ticker symbol")
	f.StringVar(&c.file, "file", "", "JSON file holding the quotes")
	f.StringVar(&c.url, "url", "", "Provider URL serving the quotes (responses are cached for the day)")
	f.StringVar(&c.path, "path", "$.quotes", "JSONPath expression selecting the quote list")
	f.StringVar(&c.currency, "c", "USD", "Currency code of the quotes")
}

func (c *importPricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" || (c.file == "") == (c.url == "") {
		f.Usage()
		return subcommands.ExitUsageError
	}
	j, err := openJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	sec, err := findSecurity(j, c.security)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var jobj any
	source := c.file
	if c.file != "" {
		data, err := os.ReadFile(c.file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := json.Unmarshal(data, &jobj); err != nil {
			fmt.Fprintf(os.Stderr, "error reading %q: %v\n", c.file, err)
			return subcommands.ExitFailure
		}
	} else {
		source = c.url
		if err := jwget(daily(), c.url, &jobj); err != nil {
			fmt.Fprintf(os.Stderr, "error fetching %q: %v\n", c.url, err)
			return subcommands.ExitFailure
		}
	}
	quotes, err := extractQuotes(jobj, c.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %q: %v\n", source, err)
		return subcommands.ExitFailure
	}
	n := 0
	for _, q := range quotes {
		if _, err := j.RecordPrice(sec.ID, q.day, brokerage.M(q.close, c.currency), true); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		n++
	}
	fmt.Printf("Imported %d prices for %s\n", n, sec.Symbol)
	return subcommands.ExitSuccess
}

type quote struct {
	day   brokerage.Date
	close float64
}

// parseQuotes extracts dated closing quotes from a provider JSON document,
// using the given JSONPath to locate the quote list.
func parseQuotes(data []byte, path string) ([]quote, error) {
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, err
	}
	return extractQuotes(jobj, path)
}

// extractQuotes locates the quote list in a decoded JSON document.
func extractQuotes(jobj any, path string) ([]quote, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("jsonpath %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of answers or
	// a single answer, so accept both.
	rows, ok := jval.([]any)
	if !ok {
		rows = []any{jval}
	}

	var quotes []quote
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			log.Printf("skipping quote entry %v: not an object", row)
			continue
		}
		ds, _ := m["date"].(string)
		day, err := brokerage.ParseDate(ds)
		if err != nil {
			log.Printf("skipping quote entry: %v", err)
			continue
		}
		close, ok := m["close"].(float64)
		if !ok {
			log.Printf("skipping quote entry on %s: no close price", day)
			continue
		}
		quotes = append(quotes, quote{day: day, close: close})
	}
	return quotes, nil
}
