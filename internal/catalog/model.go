// Package catalog owns the set of sellable items. It is the leaf dependency
// of the register: the cart resolves lookups against it and reporting joins
// sales back to it.
package catalog

import "github.com/shopspring/decimal"

// Item is a sellable catalog entry. Price is the selling price; Cost is the
// purchase cost used by the profit report.
type Item struct {
	ID       string          `json:"id"`
	Barcode  string          `json:"barcode"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Stock    int             `json:"stock"`
	Unit     string          `json:"unit"`
	Note     string          `json:"note,omitempty"`
}
