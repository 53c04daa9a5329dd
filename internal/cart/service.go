// Package cart maintains the working order for the active register session:
// line items keyed by product id, with unit prices frozen at add time.
package cart

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ploychompoo03/management-market/internal/catalog"
)

// ErrNotFound indicates a lookup query matched no catalog item. It is the
// transient "not found" hint, not a failure of the cart itself.
var ErrNotFound = errors.New("cart: item not found")

// ErrInvalidInput is returned when the provided input is invalid.
var ErrInvalidInput = errors.New("cart: invalid input")

// LineItem is one catalog item plus a quantity and a frozen unit price.
// UnitPrice is captured when the item first enters the cart and is never
// re-read from the catalog: a later price edit must not alter an in-progress
// order.
type LineItem struct {
	ItemID    string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
}

// Subtotal returns price × qty for the line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Qty)))
}

// Lookup resolves register input against the catalog.
type Lookup interface {
	FindByBarcode(code string) (catalog.Item, bool, error)
	FindByNameSubstring(text string) (catalog.Item, bool, error)
}

// Service holds the working cart. The register is a single session, but the
// HTTP surface is concurrent, so mutations are serialized by a mutex.
type Service struct {
	Catalog Lookup

	mu    sync.Mutex
	items []LineItem
}

// AddByLookup resolves free-text or scanned input and adds the match to the
// cart. Barcode matches win over name matches; a name match is the first
// case-insensitive substring hit in catalog order. On a miss the cart is left
// unchanged and ErrNotFound is returned.
func (s *Service) AddByLookup(query string) (LineItem, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return LineItem{}, fmt.Errorf("%w: empty query", ErrInvalidInput)
	}
	item, ok, err := s.Catalog.FindByBarcode(q)
	if err != nil {
		return LineItem{}, err
	}
	if !ok {
		item, ok, err = s.Catalog.FindByNameSubstring(q)
		if err != nil {
			return LineItem{}, err
		}
	}
	if !ok {
		return LineItem{}, ErrNotFound
	}
	return s.AddItem(item, 1)
}

// AddItem inserts the catalog item or increments its existing line. The price
// snapshot of an existing line is untouched.
func (s *Service) AddItem(item catalog.Item, qty int) (LineItem, error) {
	if qty <= 0 {
		return LineItem{}, fmt.Errorf("%w: qty must be positive", ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ItemID == item.ID {
			s.items[i].Qty += qty
			return s.items[i], nil
		}
	}
	line := LineItem{ItemID: item.ID, Name: item.Name, UnitPrice: item.Price, Qty: qty}
	s.items = append(s.items, line)
	return line, nil
}

// ChangeQuantity applies a delta to the line's quantity. The result is
// clamped at one from above, but a delta that would take the quantity to zero
// or below removes the line entirely.
func (s *Service) ChangeQuantity(itemID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ItemID != itemID {
			continue
		}
		if s.items[i].Qty+delta <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
		s.items[i].Qty += delta
		return
	}
}

// RemoveItem removes the line unconditionally. Absent ids are ignored.
func (s *Service) RemoveItem(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ItemID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Reset clears the working cart.
func (s *Service) Reset() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// Items returns a copy of the current line items in insertion order.
func (s *Service) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total recomputes the running total on every call; it is never cached
// across mutations.
func (s *Service) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, li := range s.items {
		total = total.Add(li.Subtotal())
	}
	return total
}
