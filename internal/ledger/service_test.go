package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ploychompoo03/management-market/internal/ledger"
	"github.com/ploychompoo03/management-market/internal/store"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func at(day int) time.Time {
	return time.Date(2025, 7, day, 10, 0, 0, 0, time.UTC)
}

func seedSales(t *testing.T) *ledger.Repository {
	t.Helper()
	repo := &ledger.Repository{S: store.NewMemStore()}
	fixtures := []ledger.Sale{
		{
			ID: "S1", At: at(1), Method: "cash",
			Items:    []ledger.SaleItem{{ID: "P001", Name: "ข้าวหอมมะลิ", Price: dec("50"), Cost: dec("40"), Qty: 2}},
			Subtotal: dec("100"), VAT: dec("7"), Total: dec("107"),
		},
		{
			ID: "S2", At: at(1), Method: "transfer",
			Items:    []ledger.SaleItem{{ID: "P002", Name: "น้ำปลา", Price: dec("20"), Cost: dec("12"), Qty: 3}},
			Subtotal: dec("60"), VAT: dec("4.20"), Total: dec("64.20"),
		},
		{
			ID: "S3", At: at(2), Method: "cash",
			Items: []ledger.SaleItem{
				{ID: "P001", Name: "ข้าวหอมมะลิ", Price: dec("50"), Cost: dec("40"), Qty: 1},
				{ID: "P003", Name: "น้ำตาลทราย", Price: dec("25"), Cost: dec("18"), Qty: 2},
			},
			Subtotal: dec("100"), VAT: dec("7"), Total: dec("107"),
		},
	}
	for _, s := range fixtures {
		_, err := repo.Append(s)
		require.NoError(t, err)
	}
	return repo
}

func TestAppendAssignsSequentialInvoices(t *testing.T) {
	repo := seedSales(t)
	sales, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, sales, 3)

	// newest first, last appended on top
	require.Equal(t, "S3", sales[0].ID)
	require.Equal(t, "#INV-00003", sales[0].Invoice)
	require.Equal(t, "#INV-00001", sales[2].Invoice)
}

func TestAppendNeverReusesInvoiceAfterDelete(t *testing.T) {
	repo := seedSales(t)
	require.NoError(t, repo.Remove("S3"))

	recorded, err := repo.Append(ledger.Sale{ID: "S4", At: at(3)})
	require.NoError(t, err)
	require.Equal(t, "#INV-00003", recorded.Invoice)
}

func TestRemoveIgnoresAbsentID(t *testing.T) {
	repo := seedSales(t)
	require.NoError(t, repo.Remove("nope"))
	sales, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, sales, 3)
}

func TestHistoryFilters(t *testing.T) {
	svc := &ledger.Service{Repo: seedSales(t)}

	all, err := svc.History(ledger.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	byInvoice, err := svc.History(ledger.HistoryFilter{Query: "00002"})
	require.NoError(t, err)
	require.Len(t, byInvoice, 1)
	require.Equal(t, "S2", byInvoice[0].ID)

	byDate, err := svc.History(ledger.HistoryFilter{Date: "2025-07-01"})
	require.NoError(t, err)
	require.Len(t, byDate, 2)

	byMethod, err := svc.History(ledger.HistoryFilter{Method: "transfer"})
	require.NoError(t, err)
	require.Len(t, byMethod, 1)

	combined, err := svc.History(ledger.HistoryFilter{Date: "2025-07-01", Method: "cash"})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	require.Equal(t, "S1", combined[0].ID)
}

func TestDetailNotFound(t *testing.T) {
	svc := &ledger.Service{Repo: seedSales(t)}
	_, err := svc.Detail("missing")
	require.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestByProductAggregatesAndRanksByRevenue(t *testing.T) {
	svc := &ledger.Service{Repo: seedSales(t)}
	rows, summary, err := svc.ByProduct(time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// P001 sold 3 units for 150 revenue, 120 cost
	require.Equal(t, "P001", rows[0].ID)
	require.Equal(t, 3, rows[0].Qty)
	require.True(t, rows[0].Total.Equal(dec("150")))
	require.True(t, rows[0].Profit.Equal(dec("30")))

	require.Equal(t, 3, summary.OrderCount)
	require.True(t, summary.TotalSales.Equal(dec("278.20")))
	// 30 + 24 + 14
	require.True(t, summary.TotalProfit.Equal(dec("68")))
}

func TestByProductRangeBounds(t *testing.T) {
	svc := &ledger.Service{Repo: seedSales(t)}

	// 2025-07-01 only: the upper bound is exclusive of the next midnight
	rows, summary, err := svc.ByProduct(at(1).Truncate(24*time.Hour), at(2).Truncate(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 2, summary.OrderCount)
}

func TestByDayGroupsChronologically(t *testing.T) {
	svc := &ledger.Service{Repo: seedSales(t)}
	rows, err := svc.ByDay(time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "2025-07-01", rows[0].Date)
	require.Equal(t, 2, rows[0].Orders)
	require.True(t, rows[0].Total.Equal(dec("171.20")))
	require.Equal(t, "2025-07-02", rows[1].Date)
	require.Equal(t, 1, rows[1].Orders)
}
