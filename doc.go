// Package brokerage keeps the derived state of investment accounts
// reconciled with their transaction journals.
//
// The core functionalities include:
//   - Transaction Journal: recording and deleting account transactions
//     (deposits, withdrawals, buys, sells, fees, dividends, stock splits),
//     with a single classification driving both the apply and the reverse
//     side so the two can never drift apart.
//   - Position Ledger: one derived holding per (account, security) pair,
//     updated incrementally by buys and sells and exactly undone when the
//     originating transaction is deleted, short positions included.
//   - Price Store: one price per security and day, with official closing
//     quotes taking precedence over intraday and trade-derived ones.
//   - Valuation: cash balance and mark-to-market account value as a pure
//     function of the journal, the positions and the price history.
//   - Data Persistence: a pluggable Store collaborator with an in-memory
//     implementation for tests and a JSONL directory implementation for the
//     `bks` command-line tool.
//
// All quantities and amounts are exact decimals; zero comparisons are exact,
// never tolerance checks.
package brokerage
