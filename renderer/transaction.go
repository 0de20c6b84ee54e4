package renderer

import (
	"fmt"

	"github.com/mstrand/brokerage"
)

// Transaction renders a transaction to a one-line string. symbol is the
// ticker of the referenced security, empty when the kind references none.
func Transaction(tx brokerage.Transaction, symbol string) string {
	switch tx.Kind {
	case brokerage.TxDeposit:
		return fmt.Sprintf("Deposited %s", tx.Value)
	case brokerage.TxWithdrawal:
		return fmt.Sprintf("Withdrew %s", tx.Value)
	case brokerage.TxBuy:
		return fmt.Sprintf("Bought %s %s for %s (fee %s)", tx.Quantity, symbol, tx.Value, tx.Fee)
	case brokerage.TxSell:
		return fmt.Sprintf("Sold %s %s for %s (fee %s)", tx.Quantity, symbol, tx.Value, tx.Fee)
	case brokerage.TxFee:
		return fmt.Sprintf("Fee of %s", tx.Value)
	case brokerage.TxDividend:
		return fmt.Sprintf("Dividend of %s on %s", tx.Value, symbol)
	case brokerage.TxStockSplit:
		return fmt.Sprintf("Stock split on %s", symbol)
	default:
		return string(tx.Kind)
	}
}
