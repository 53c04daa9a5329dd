package events

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// LowStockNotifier warns when a completed sale leaves items at or below the
// reorder threshold. It only inspects sale.completed payloads.
type LowStockNotifier struct {
	Log       zerolog.Logger
	Threshold int
}

type soldItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	StockLeft int    `json:"stockLeft"`
}

// Notify implements Notifier.
func (n LowStockNotifier) Notify(_ context.Context, event Event) error {
	if event.Topic != TopicSaleCompleted {
		return nil
	}
	var payload struct {
		Items []soldItem `json:"items"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return nil
	}
	for _, it := range payload.Items {
		if it.StockLeft <= n.Threshold {
			n.Log.Warn().
				Str("product_id", it.ID).
				Str("name", it.Name).
				Int("stock_left", it.StockLeft).
				Msg("low_stock")
		}
	}
	return nil
}
