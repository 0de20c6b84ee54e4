package brokerage

import "fmt"

// TxType is a typed string identifying the kind of a transaction.
type TxType string

// Transaction kinds.
const (
	TxDeposit    TxType = "deposit"
	TxWithdrawal TxType = "withdrawal"
	TxBuy        TxType = "buy"
	TxSell       TxType = "sell"
	TxFee        TxType = "fee"
	TxDividend   TxType = "dividend"
	TxStockSplit TxType = "stock-split"
)

// ParseTxType parses a string into a TxType.
func ParseTxType(s string) (TxType, error) {
	switch k := TxType(s); k {
	case TxDeposit, TxWithdrawal, TxBuy, TxSell, TxFee, TxDividend, TxStockSplit:
		return k, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// effect describes how a transaction kind moves cash and shares. It is the
// single classification used by the add path, the delete path, and the cash
// balance fold, so the two sides of the journal can never drift apart.
type effect struct {
	cash   int  // +1 credits cash, -1 debits cash, 0 no cash effect
	shares int  // +1 adds shares to the position, -1 removes, 0 no position effect
	quoted bool // true when the trade leaves a market quote behind
}

// effect returns the classified effect of the transaction kind.
//
// Dividend and StockSplit are accepted and stored, but deliberately have no
// position or price effect: corporate-action processing beyond classification
// is a documented extension point, not an oversight.
func (k TxType) effect() effect {
	switch k {
	case TxDeposit:
		return effect{cash: +1}
	case TxWithdrawal:
		return effect{cash: -1}
	case TxBuy:
		return effect{cash: -1, shares: +1, quoted: true}
	case TxSell:
		return effect{cash: +1, shares: -1, quoted: true}
	case TxFee:
		return effect{cash: -1}
	case TxDividend:
		return effect{cash: +1}
	case TxStockSplit:
		return effect{}
	default:
		return effect{}
	}
}

// Transaction is a single dated entry in an account's journal.
//
// Kind fully determines which other fields are meaningful: SecurityID,
// Quantity and Fee only matter for Buy and Sell. Value is always
// non-negative; its sign contribution to cash is determined by Kind.
//
// A transaction's Kind is immutable after creation. Changing the type of a
// recorded transaction is disallowed; the correct path is delete + recreate.
type Transaction struct {
	ID         int64    `json:"id"`
	AccountID  int64    `json:"account"`
	Kind       TxType   `json:"kind"`
	Date       Date     `json:"date"`
	SecurityID int64    `json:"security,omitempty"` // 0 means no security
	Quantity   Quantity `json:"quantity,omitempty"`
	Value      Money    `json:"value"`
	Fee        Money    `json:"fee,omitempty"`
}

// NewDeposit creates a cash deposit transaction.
func NewDeposit(day Date, value Money) Transaction {
	return Transaction{Kind: TxDeposit, Date: day, Value: value}
}

// NewWithdrawal creates a cash withdrawal transaction.
func NewWithdrawal(day Date, value Money) Transaction {
	return Transaction{Kind: TxWithdrawal, Date: day, Value: value}
}

// NewFee creates an account fee transaction.
func NewFee(day Date, value Money) Transaction {
	return Transaction{Kind: TxFee, Date: day, Value: value}
}

// NewDividend creates a dividend transaction. The security reference is kept
// for display, it has no position or price effect.
func NewDividend(day Date, security int64, value Money) Transaction {
	return Transaction{Kind: TxDividend, Date: day, SecurityID: security, Value: value}
}

// NewBuy creates a buy transaction. Value is the net cash spent, fees
// included; Fee is informational and used to back the unit price out of Value.
func NewBuy(day Date, security int64, quantity Quantity, value, fee Money) Transaction {
	return Transaction{Kind: TxBuy, Date: day, SecurityID: security, Quantity: quantity, Value: value, Fee: fee}
}

// NewSell creates a sell transaction. Value is the net cash received, fees
// already deducted.
func NewSell(day Date, security int64, quantity Quantity, value, fee Money) Transaction {
	return Transaction{Kind: TxSell, Date: day, SecurityID: security, Quantity: quantity, Value: value, Fee: fee}
}

// NewStockSplit creates a stock split transaction. It is classified and
// stored but has no effect on positions or prices.
func NewStockSplit(day Date, security int64) Transaction {
	return Transaction{Kind: TxStockSplit, Date: day, SecurityID: security}
}

// normalized returns a copy with the fields that are not meaningful for the
// transaction's kind reset to neutral values, so stray input entered against
// the wrong kind never bleeds into derived state.
func (t Transaction) normalized() Transaction {
	eff := t.Kind.effect()
	if eff.shares == 0 && t.Kind != TxDividend && t.Kind != TxStockSplit {
		t.SecurityID = 0
	}
	if eff.shares == 0 {
		t.Quantity = Q(0)
		t.Fee = M(0, t.Fee.Currency())
	}
	return t
}

// quote derives the unit price a Buy or Sell implies. Value is the net cash
// effect, so the fee must be backed out in the opposite direction for each
// side: buy (value-fee)/qty, sell (value+fee)/qty. The bool is false when the
// transaction carries no usable quote (zero quantity or non-trade kind).
func (t Transaction) quote() (Money, bool) {
	if !t.Kind.effect().quoted || t.Quantity.IsZero() {
		return Money{}, false
	}
	switch t.Kind {
	case TxBuy:
		return t.Value.Sub(t.Fee).Div(t.Quantity), true
	default: // TxSell
		return t.Value.Add(t.Fee).Div(t.Quantity), true
	}
}
