package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ploychompoo03/management-market/internal/catalog"
	"github.com/ploychompoo03/management-market/internal/store"
)

func newService(t *testing.T) *catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(&catalog.Repository{S: store.NewMemStore()})
	require.NoError(t, err)
	return svc
}

func TestSeedsDemoCatalogOnFirstLoad(t *testing.T) {
	svc := newService(t)
	items, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, items, 10)
	require.Equal(t, "P001", items[0].ID)
	require.True(t, items[0].Price.Equal(decimal.NewFromInt(10)))
}

func TestLookupContracts(t *testing.T) {
	repo := &catalog.Repository{S: store.NewMemStore()}

	item, ok, err := repo.FindByBarcode("885195912312")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "P002", item.ID)

	_, ok, err = repo.FindByBarcode("0000000000")
	require.NoError(t, err)
	require.False(t, ok)

	// case-insensitive substring, first match in catalog order
	item, ok, err = repo.FindByNameSubstring("uht")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "P007", item.ID)
}

func TestListFiltersAcrossFields(t *testing.T) {
	svc := newService(t)

	byCategory, err := svc.List("เครื่องดื่ม")
	require.NoError(t, err)
	require.Len(t, byCategory, 4)

	byBarcode, err := svc.List("885123456789")
	require.NoError(t, err)
	require.Len(t, byBarcode, 1)
	require.Equal(t, "P003", byBarcode[0].ID)
}

func TestCreateAssignsSequentialID(t *testing.T) {
	svc := newService(t)
	created, err := svc.Create(catalog.ItemInput{
		Name:  "ข้าวหอมมะลิ 5 กก.",
		Price: "185",
		Stock: 40,
	})
	require.NoError(t, err)
	require.Equal(t, "P011", created.ID)
	require.True(t, created.Price.Equal(decimal.NewFromInt(185)))

	got, err := svc.Get("P011")
	require.NoError(t, err)
	require.Equal(t, created.Name, got.Name)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc := newService(t)
	_, err := svc.Create(catalog.ItemInput{Price: "10"})
	require.ErrorIs(t, err, catalog.ErrInvalidInput)

	_, err = svc.Create(catalog.ItemInput{Name: "x", Price: "10", Stock: -1})
	require.ErrorIs(t, err, catalog.ErrInvalidInput)
}

func TestUpdateAndDelete(t *testing.T) {
	svc := newService(t)

	updated, err := svc.Update("P001", catalog.ItemInput{Name: "น้ำดื่ม 600 ml", Price: "12", Stock: 100})
	require.NoError(t, err)
	require.True(t, updated.Price.Equal(decimal.NewFromInt(12)))

	_, err = svc.Update("P999", catalog.ItemInput{Name: "x", Price: "1"})
	require.ErrorIs(t, err, catalog.ErrNotFound)

	require.NoError(t, svc.Delete("P001"))
	_, err = svc.Get("P001")
	require.ErrorIs(t, err, catalog.ErrNotFound)
	// idempotent
	require.NoError(t, svc.Delete("P001"))
}

func TestAdjustStockClampsAtZero(t *testing.T) {
	repo := &catalog.Repository{S: store.NewMemStore()}
	_, err := repo.Load()
	require.NoError(t, err)

	require.NoError(t, repo.AdjustStock("P005", -5))
	item, ok, err := repo.Get("P005")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 15, item.Stock)

	require.NoError(t, repo.AdjustStock("P005", -100))
	item, _, err = repo.Get("P005")
	require.NoError(t, err)
	require.Equal(t, 0, item.Stock)
}
