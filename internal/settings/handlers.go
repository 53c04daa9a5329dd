package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ploychompoo03/management-market/internal/common"
)

// Handler wires the settings repository to HTTP.
type Handler struct {
	Repo *Repository
}

// Get returns the current shop settings.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Repo.Load()})
}

// Put replaces the shop settings.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	var s Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if err := h.Repo.Save(s); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to save settings", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": s})
}
