package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ploychompoo03/management-market/internal/catalog"
	"github.com/ploychompoo03/management-market/internal/common"
	"github.com/ploychompoo03/management-market/internal/handoff"
)

// TaxSource supplies the configured VAT rate at finalize time.
type TaxSource interface {
	TaxRatePercent() decimal.Decimal
}

// Handler wires the working cart to HTTP.
type Handler struct {
	Svc      *Service
	Products *catalog.Repository
	Tax      TaxSource
	Channel  *handoff.Channel
}

// Get returns the current cart lines and running total.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, http.StatusOK)
}

// Lookup resolves scanned or typed input and adds the match to the cart.
// A miss answers 404 with a hint code; the cart is unchanged.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	line, err := h.Svc.AddByLookup(payload.Query)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "query is required", nil)
		case errors.Is(err, ErrNotFound):
			common.JSONError(w, http.StatusNotFound, "LOOKUP_MISS", "ไม่พบสินค้า", nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to resolve product", nil)
		}
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"added": line,
			"items": h.Svc.Items(),
			"total": h.Svc.Total(),
		},
	})
}

// AddItem adds a known product by id, the quick-add path.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID  string `json:"id"`
		Qty int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if payload.Qty == 0 {
		payload.Qty = 1
	}
	item, ok, err := h.Products.Get(payload.ID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load product", nil)
		return
	}
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		return
	}
	if _, err := h.Svc.AddItem(item, payload.Qty); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	h.writeCart(w, http.StatusOK)
}

// UpdateItem applies a quantity delta to a line.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	h.Svc.ChangeQuantity(chi.URLParam(r, "itemId"), payload.Delta)
	h.writeCart(w, http.StatusOK)
}

// RemoveItem deletes a line.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.Svc.RemoveItem(chi.URLParam(r, "itemId"))
	h.writeCart(w, http.StatusOK)
}

// Reset clears the cart.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Svc.Reset()
	h.writeCart(w, http.StatusOK)
}

// Checkout freezes the cart into the hand-off slot and clears the working
// cart, handing control to the payment screen.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	lines := h.Svc.Items()
	items := make([]handoff.Item, 0, len(lines))
	for _, li := range lines {
		items = append(items, handoff.Item{ID: li.ItemID, Name: li.Name, Price: li.UnitPrice, Qty: li.Qty})
	}
	err := h.Channel.Finalize(items, h.Tax.TaxRatePercent())
	if err != nil {
		if errors.Is(err, handoff.ErrEmptyCart) {
			common.JSONError(w, http.StatusConflict, "EMPTY_CART", "cart is empty", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to finalize cart", nil)
		return
	}
	h.Svc.Reset()
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"finalized": true}})
}

func (h *Handler) writeCart(w http.ResponseWriter, status int) {
	common.JSON(w, status, map[string]any{
		"data": map[string]any{
			"items": h.Svc.Items(),
			"total": h.Svc.Total(),
		},
	})
}
