// Package handoff transfers a finalized cart from the register screen to the
// payment screen through a single persistent slot. It is pure transport: no
// pricing rules live here.
package handoff

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ploychompoo03/management-market/internal/store"
)

// ErrEmptyCart is returned when finalize is attempted with no line items.
var ErrEmptyCart = errors.New("handoff: cart is empty")

// Payload is the immutable snapshot that crosses from cart to checkout.
type Payload struct {
	Items   []Item          `json:"items"`
	VATRate decimal.Decimal `json:"vatRate"`
}

// Item mirrors one cart line inside the payload.
type Item struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Qty   int             `json:"qty"`
}

// Empty reports whether the payload carries no lines.
func (p Payload) Empty() bool {
	return len(p.Items) == 0
}

// Channel is the one-slot hand-off between the two screens.
type Channel struct {
	S store.Store
}

// Finalize freezes the cart lines plus the configured VAT rate into the slot.
// A payload already sitting unconsumed in the slot is overwritten; with one
// register and one session that is the accepted semantics.
func (c *Channel) Finalize(items []Item, vatRatePercent decimal.Decimal) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	return c.S.Put(store.KeyCheckout, Payload{Items: items, VATRate: vatRatePercent})
}

// Consume reads the payload. A missing or malformed slot degrades to an
// empty payload so the payment screen can render its empty-cart state instead
// of failing.
func (c *Channel) Consume() Payload {
	var p Payload
	if ok, err := c.S.Get(store.KeyCheckout, &p); err != nil || !ok {
		return Payload{VATRate: decimal.Zero}
	}
	if p.Items == nil {
		p.Items = []Item{}
	}
	return p
}

// Discard clears the slot. It is called once, when a confirmed payment's
// result dialog closes; abandoning the payment screen leaves the slot as is.
func (c *Channel) Discard() error {
	return c.S.Delete(store.KeyCheckout)
}
