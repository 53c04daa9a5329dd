package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts free-text numeric entry into an amount. Thousands
// separators are stripped, surrounding whitespace is ignored, and anything
// that still fails to parse coerces to zero. Negative entry also coerces to
// zero: there is no negative tender.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil || amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// NormalizeAmount snaps free-text entry to a two-decimal string, the shape
// the tender field settles on when it loses focus ("100" -> "100.00").
func NormalizeAmount(raw string) string {
	return ParseAmount(raw).StringFixed(2)
}
