// Package settings stores the shop configuration the register reads at
// checkout time, most importantly the VAT rate.
package settings

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ploychompoo03/management-market/internal/store"
)

// ErrInvalidInput is returned when the submitted settings are out of range.
var ErrInvalidInput = errors.New("settings: invalid input")

// Settings holds the administrative shop configuration.
type Settings struct {
	ShopName       string          `json:"shopName"`
	Address        string          `json:"address,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	VATRatePercent decimal.Decimal `json:"vat"`
}

// Repository persists settings in the local store.
type Repository struct {
	S store.Store
}

// Load returns the stored settings, or zero-valued defaults when absent.
// A corrupt slot also degrades to defaults: the register must never refuse to
// sell because the settings file is broken.
func (r *Repository) Load() Settings {
	var s Settings
	if ok, err := r.S.Get(store.KeySettings, &s); err != nil || !ok {
		return Settings{}
	}
	return s
}

// Save validates and stores the settings. The VAT rate must stay within
// [0, 100] percent.
func (r *Repository) Save(s Settings) error {
	if s.VATRatePercent.IsNegative() || s.VATRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: vat rate must be between 0 and 100", ErrInvalidInput)
	}
	return r.S.Put(store.KeySettings, s)
}

// TaxRatePercent is the contract the checkout pipeline depends on. Absent or
// malformed settings yield a zero rate.
func (r *Repository) TaxRatePercent() decimal.Decimal {
	return r.Load().VATRatePercent
}
