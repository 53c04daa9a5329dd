package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ploychompoo03/management-market/internal/common"
	"github.com/ploychompoo03/management-market/internal/pricing"
)

// Handler wires the checkout flow to HTTP.
type Handler struct {
	Svc *Service
}

type entryPayload struct {
	Method   string `json:"method"`
	Tendered string `json:"tendered"`
}

// View returns the payload totals plus the live quote for the current entry
// values, passed as query parameters. An empty or missing payload renders as
// the empty-cart state, never an error.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	quote := h.Svc.View(q.Get("method"), q.Get("tendered"))
	payload := h.Svc.Channel.Consume()
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"items": payload.Items,
			"quote": quote,
		},
	})
}

// Quote recomputes totals and change for the entered method and tender; the
// register calls it as the cashier types.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var in entryPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	quote := h.Svc.View(in.Method, in.Tendered)
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"quote":      quote,
			"normalized": pricing.NormalizeAmount(in.Tendered),
		},
	})
}

// Confirm settles the payment. Guards answer conflict-style errors; nothing
// is committed unless every guard passes.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	var in entryPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	result, err := h.Svc.Confirm(r.Context(), in.Method, in.Tendered)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyPayload):
			common.JSONError(w, http.StatusConflict, "EMPTY_CART", "ไม่พบตะกร้าสินค้า", nil)
		case errors.Is(err, ErrMethodRequired), errors.Is(err, ErrUnknownMethod):
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
		case errors.Is(err, ErrInsufficientTender):
			common.JSONError(w, http.StatusUnprocessableEntity, "INSUFFICIENT_TENDER", "เงินสดไม่พอสำหรับยอดสุทธิ", nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to confirm payment", nil)
		}
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": result})
}
