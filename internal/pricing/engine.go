// Package pricing holds the pure checkout math: line-item aggregation, VAT,
// grand total and change. Nothing in here touches storage or HTTP.
package pricing

import "github.com/shopspring/decimal"

// Item describes a line item used for totals calculation.
type Item struct {
	Qty       int
	UnitPrice decimal.Decimal
}

// Summary aggregates the computed pricing components.
type Summary struct {
	Subtotal decimal.Decimal
	VAT      decimal.Decimal
	Total    decimal.Decimal
}

// Compute calculates cart totals for the given VAT rate (percent).
// The subtotal is the unrounded sum of price×qty in sequence order; rounding
// to two decimals happens only where VAT and the grand total are derived, so
// repeated recomputation never compounds rounding error.
func Compute(items []Item, vatRatePercent decimal.Decimal) Summary {
	subtotal := decimal.Zero
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	if vatRatePercent.IsNegative() {
		vatRatePercent = decimal.Zero
	}
	vat := subtotal.Mul(vatRatePercent).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(vat).Round(2)
	return Summary{Subtotal: subtotal, VAT: vat, Total: total}
}

// Change returns the cash change for the tendered amount, floored at zero.
func Change(tendered, total decimal.Decimal) decimal.Decimal {
	change := tendered.Sub(total)
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}

// Covers reports whether the tendered amount is enough for the total.
func Covers(tendered, total decimal.Decimal) bool {
	return tendered.GreaterThanOrEqual(total)
}
