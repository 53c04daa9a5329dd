package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/ploychompoo03/management-market/internal/catalog"
	"github.com/ploychompoo03/management-market/internal/ledger"
)

// DefaultCommitter applies the standard settlement side effects: decrement
// catalog stock for each sold line, snapshot purchase costs onto the sale and
// append it to the ledger.
type DefaultCommitter struct {
	Catalog *catalog.Repository
	Ledger  *ledger.Repository
}

// Commit implements Committer.
func (c DefaultCommitter) Commit(_ context.Context, sale ledger.Sale) (ledger.Sale, []StockLevel, error) {
	if c.Catalog == nil || c.Ledger == nil {
		return ledger.Sale{}, nil, errors.New("checkout: committer not configured")
	}
	levels := make([]StockLevel, 0, len(sale.Items))
	for i, it := range sale.Items {
		if err := c.Catalog.AdjustStock(it.ID, -it.Qty); err != nil {
			return ledger.Sale{}, nil, fmt.Errorf("adjust stock %s: %w", it.ID, err)
		}
		level := StockLevel{ID: it.ID, Name: it.Name, Qty: it.Qty}
		if item, ok, err := c.Catalog.Get(it.ID); err == nil && ok {
			sale.Items[i].Cost = item.Cost
			level.StockLeft = item.Stock
		}
		levels = append(levels, level)
	}
	recorded, err := c.Ledger.Append(sale)
	if err != nil {
		return ledger.Sale{}, nil, fmt.Errorf("append sale: %w", err)
	}
	return recorded, levels, nil
}
