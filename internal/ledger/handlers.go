package ledger

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ploychompoo03/management-market/internal/common"
)

// Handler wires sales history and reporting to HTTP.
type Handler struct {
	Svc *Service
}

// History lists recorded sales, filtered by q, date and method parameters.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Svc.History(HistoryFilter{
		Query:  r.URL.Query().Get("q"),
		Date:   r.URL.Query().Get("date"),
		Method: r.URL.Query().Get("method"),
	})
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load sales history", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": sales})
}

// Detail returns one sale by id.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	sale, err := h.Svc.Detail(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "sale not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load sale", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": sale})
}

// Delete removes a sale from the history.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(chi.URLParam(r, "id")); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to delete sale", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"deleted": true}})
}

// ByProduct renders the per-product sales report for the requested range.
func (h *Handler) ByProduct(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRange(w, r)
	if !ok {
		return
	}
	rows, summary, err := h.Svc.ByProduct(from, to)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to build report", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"rows": rows, "summary": summary}})
}

// ByDay renders the per-day sales report for the requested range.
func (h *Handler) ByDay(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRange(w, r)
	if !ok {
		return
	}
	rows, err := h.Svc.ByDay(from, to)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to build report", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// parseRange reads optional from/to query dates (yyyy-mm-dd). The to bound is
// exclusive of the following midnight so a single-day range is from==to.
func parseRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	var from, to time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid from date", nil)
			return from, to, false
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid to date", nil)
			return from, to, false
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, true
}
