package brokerage

// Security identifies a tradable instrument by symbol and display name.
//
// A security is immutable once referenced by a transaction: the symbol and
// name may be edited by an outer layer, but the identity never changes.
type Security struct {
	ID     int64  `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name,omitempty"`
}
