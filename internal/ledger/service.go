package ledger

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates the requested sale could not be located.
var ErrNotFound = errors.New("ledger: sale not found")

// HistoryFilter narrows the sales history listing.
type HistoryFilter struct {
	Query  string
	Date   string // yyyy-mm-dd, matches the sale's local date
	Method string
}

// ProductRow is one line of the by-product report.
type ProductRow struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Qty    int             `json:"qty"`
	Total  decimal.Decimal `json:"total"`
	Cost   decimal.Decimal `json:"cost"`
	Profit decimal.Decimal `json:"profit"`
}

// DayRow is one line of the by-day report.
type DayRow struct {
	Date   string          `json:"date"`
	Orders int             `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}

// ReportSummary aggregates the report headline numbers.
type ReportSummary struct {
	TotalSales  decimal.Decimal `json:"totalSales"`
	OrderCount  int             `json:"orderCount"`
	TotalProfit decimal.Decimal `json:"totalProfit"`
}

// Service answers history and reporting queries over the recorded sales.
type Service struct {
	Repo *Repository
}

// History lists sales newest first, optionally filtered.
func (s *Service) History(f HistoryFilter) ([]Sale, error) {
	sales, err := s.Repo.Load()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Sale, 0, len(sales))
	for _, sale := range sales {
		if q != "" && !strings.Contains(strings.ToLower(sale.Invoice), q) {
			continue
		}
		if f.Date != "" && sale.At.Format("2006-01-02") != f.Date {
			continue
		}
		if f.Method != "" && sale.Method != f.Method {
			continue
		}
		out = append(out, sale)
	}
	return out, nil
}

// Detail returns a single sale.
func (s *Service) Detail(id string) (Sale, error) {
	sale, ok, err := s.Repo.Get(id)
	if err != nil {
		return Sale{}, err
	}
	if !ok {
		return Sale{}, ErrNotFound
	}
	return sale, nil
}

// Delete removes a sale from the history.
func (s *Service) Delete(id string) error {
	return s.Repo.Remove(id)
}

// ByProduct aggregates sold quantity, revenue, cost and profit per product
// over the given range. Zero bounds leave that side open.
func (s *Service) ByProduct(from, to time.Time) ([]ProductRow, ReportSummary, error) {
	sales, err := s.inRange(from, to)
	if err != nil {
		return nil, ReportSummary{}, err
	}
	byID := make(map[string]*ProductRow)
	order := make([]string, 0)
	summary := ReportSummary{TotalSales: decimal.Zero, TotalProfit: decimal.Zero}
	for _, sale := range sales {
		summary.OrderCount++
		summary.TotalSales = summary.TotalSales.Add(sale.Total)
		for _, it := range sale.Items {
			row, ok := byID[it.ID]
			if !ok {
				row = &ProductRow{ID: it.ID, Name: it.Name, Total: decimal.Zero, Cost: decimal.Zero, Profit: decimal.Zero}
				byID[it.ID] = row
				order = append(order, it.ID)
			}
			qty := decimal.NewFromInt(int64(it.Qty))
			lineTotal := it.Price.Mul(qty)
			lineCost := it.Cost.Mul(qty)
			row.Qty += it.Qty
			row.Total = row.Total.Add(lineTotal)
			row.Cost = row.Cost.Add(lineCost)
			row.Profit = row.Profit.Add(lineTotal.Sub(lineCost))
			summary.TotalProfit = summary.TotalProfit.Add(lineTotal.Sub(lineCost))
		}
	}
	rows := make([]ProductRow, 0, len(order))
	for _, id := range order {
		rows = append(rows, *byID[id])
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total.GreaterThan(rows[j].Total) })
	return rows, summary, nil
}

// ByDay aggregates order count and revenue per calendar day over the range.
func (s *Service) ByDay(from, to time.Time) ([]DayRow, error) {
	sales, err := s.inRange(from, to)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]*DayRow)
	for _, sale := range sales {
		date := sale.At.Format("2006-01-02")
		row, ok := byDate[date]
		if !ok {
			row = &DayRow{Date: date, Total: decimal.Zero}
			byDate[date] = row
		}
		row.Orders++
		row.Total = row.Total.Add(sale.Total)
	}
	rows := make([]DayRow, 0, len(byDate))
	for _, row := range byDate {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows, nil
}

func (s *Service) inRange(from, to time.Time) ([]Sale, error) {
	sales, err := s.Repo.Load()
	if err != nil {
		return nil, err
	}
	out := make([]Sale, 0, len(sales))
	for _, sale := range sales {
		if !from.IsZero() && sale.At.Before(from) {
			continue
		}
		if !to.IsZero() && !sale.At.Before(to) {
			continue
		}
		out = append(out, sale)
	}
	return out, nil
}
