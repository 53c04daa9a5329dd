package settings_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ploychompoo03/management-market/internal/settings"
	"github.com/ploychompoo03/management-market/internal/store"
)

func TestTaxRateDefaultsToZero(t *testing.T) {
	repo := &settings.Repository{S: store.NewMemStore()}
	require.True(t, repo.TaxRatePercent().IsZero())
}

func TestTaxRateDegradesOnCorruptSlot(t *testing.T) {
	mem := store.NewMemStore()
	mem.PutRaw(store.KeySettings, []byte(`{"vat": "seven"}`))
	repo := &settings.Repository{S: mem}
	require.True(t, repo.TaxRatePercent().IsZero())
}

func TestSaveValidatesRange(t *testing.T) {
	repo := &settings.Repository{S: store.NewMemStore()}

	err := repo.Save(settings.Settings{VATRatePercent: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, settings.ErrInvalidInput)

	err = repo.Save(settings.Settings{VATRatePercent: decimal.NewFromInt(101)})
	require.ErrorIs(t, err, settings.ErrInvalidInput)

	err = repo.Save(settings.Settings{ShopName: "ร้านป้าแมว", VATRatePercent: decimal.NewFromInt(7)})
	require.NoError(t, err)
	require.True(t, repo.TaxRatePercent().Equal(decimal.NewFromInt(7)))
	require.Equal(t, "ร้านป้าแมว", repo.Load().ShopName)
}
