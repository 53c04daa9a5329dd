// Package ledger records completed settlements and answers the sales history
// and reporting screens.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem is one sold line with the prices frozen at settlement time. Cost
// is snapshotted too so the profit report does not drift when purchase costs
// are edited later.
type SaleItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Cost  decimal.Decimal `json:"cost"`
	Qty   int             `json:"qty"`
}

// Sale is one completed settlement.
type Sale struct {
	ID       string          `json:"id"`
	Invoice  string          `json:"invoice"`
	At       time.Time       `json:"at"`
	Cashier  string          `json:"cashier,omitempty"`
	Items    []SaleItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	VATRate  decimal.Decimal `json:"vatRate"`
	VAT      decimal.Decimal `json:"vat"`
	Total    decimal.Decimal `json:"total"`
	Method   string          `json:"method"`
	Tendered decimal.Decimal `json:"tendered"`
	Change   decimal.Decimal `json:"change"`
}
