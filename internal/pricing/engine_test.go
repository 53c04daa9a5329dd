package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ploychompoo03/management-market/internal/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeTotals(t *testing.T) {
	items := []pricing.Item{
		{Qty: 2, UnitPrice: dec("50")},
		{Qty: 1, UnitPrice: dec("20")},
	}
	sum := pricing.Compute(items, dec("7"))
	require.True(t, sum.Subtotal.Equal(dec("120")), "subtotal %s", sum.Subtotal)
	require.True(t, sum.VAT.Equal(dec("8.40")), "vat %s", sum.VAT)
	require.True(t, sum.Total.Equal(dec("128.40")), "total %s", sum.Total)
}

func TestComputeZeroRateAndEmptyCart(t *testing.T) {
	sum := pricing.Compute(nil, decimal.Zero)
	require.True(t, sum.Subtotal.IsZero())
	require.True(t, sum.VAT.IsZero())
	require.True(t, sum.Total.IsZero())

	sum = pricing.Compute([]pricing.Item{{Qty: 3, UnitPrice: dec("35")}}, decimal.Zero)
	require.True(t, sum.VAT.IsZero())
	require.True(t, sum.Total.Equal(dec("105")))
}

func TestComputeSkipsNonPositiveQuantities(t *testing.T) {
	items := []pricing.Item{
		{Qty: 0, UnitPrice: dec("99")},
		{Qty: -2, UnitPrice: dec("99")},
		{Qty: 1, UnitPrice: dec("65")},
	}
	sum := pricing.Compute(items, dec("7"))
	require.True(t, sum.Subtotal.Equal(dec("65")))
}

func TestComputeClampsNegativeRate(t *testing.T) {
	sum := pricing.Compute([]pricing.Item{{Qty: 1, UnitPrice: dec("100")}}, dec("-7"))
	require.True(t, sum.VAT.IsZero())
	require.True(t, sum.Total.Equal(dec("100")))
}

func TestComputeRoundsOnlyAtDerivation(t *testing.T) {
	// 3 × 33.335 = 100.005; VAT at 7% of the unrounded subtotal.
	items := []pricing.Item{{Qty: 3, UnitPrice: dec("33.335")}}
	sum := pricing.Compute(items, dec("7"))
	require.True(t, sum.Subtotal.Equal(dec("100.005")), "subtotal stays unrounded: %s", sum.Subtotal)
	require.True(t, sum.VAT.Equal(dec("7.00")), "vat %s", sum.VAT)
	require.True(t, sum.Total.Equal(dec("107.01")), "total %s", sum.Total)
}

func TestComputeIdempotent(t *testing.T) {
	items := []pricing.Item{
		{Qty: 4, UnitPrice: dec("19.99")},
		{Qty: 2, UnitPrice: dec("3.50")},
	}
	first := pricing.Compute(items, dec("7.5"))
	second := pricing.Compute(items, dec("7.5"))
	require.True(t, first.Subtotal.Equal(second.Subtotal))
	require.True(t, first.VAT.Equal(second.VAT))
	require.True(t, first.Total.Equal(second.Total))
}

func TestChangeBoundaries(t *testing.T) {
	total := dec("128.40")

	require.True(t, pricing.Change(dec("130.00"), total).Equal(dec("1.60")))
	require.True(t, pricing.Change(total, total).IsZero())
	require.True(t, pricing.Change(dec("100.00"), total).IsZero(), "short tender floors at zero")

	require.True(t, pricing.Covers(total, total))
	require.True(t, pricing.Covers(dec("130.00"), total))
	require.False(t, pricing.Covers(dec("128.39"), total), "one satang short must not cover")
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"100", "100"},
		{"1,234.50", "1234.5"},
		{" 42.10 ", "42.1"},
		{"", "0"},
		{"abc", "0"},
		{"12x", "0"},
		{"-5", "0"},
	}
	for _, tc := range cases {
		got := pricing.ParseAmount(tc.raw)
		require.True(t, got.Equal(dec(tc.want)), "ParseAmount(%q) = %s, want %s", tc.raw, got, tc.want)
	}
}

func TestNormalizeAmount(t *testing.T) {
	require.Equal(t, "100.00", pricing.NormalizeAmount("100"))
	require.Equal(t, "1234.50", pricing.NormalizeAmount("1,234.5"))
	require.Equal(t, "0.00", pricing.NormalizeAmount("not a number"))
}
