package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ploychompoo03/management-market/internal/common"
)

// Handler wires the account service to HTTP.
type Handler struct {
	Svc *Service
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and returns the session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	session, err := h.Svc.Login(in.Username, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrAccountDisabled):
			common.JSONError(w, http.StatusForbidden, "ACCOUNT_DISABLED", "บัญชีนี้ถูกปิดใช้งาน", nil)
		case errors.Is(err, ErrInvalidCredentials):
			common.JSONError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "อีเมล/ชื่อผู้ใช้ หรือรหัสผ่านไม่ถูกต้อง", nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to log in", nil)
		}
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": session})
}

// Me returns the authenticated account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
		return
	}
	account, err := h.Svc.Get(id)
	if err != nil {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": account})
}

// List returns accounts, filtered by the optional q parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Svc.List(r.URL.Query().Get("q"))
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load users", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": accounts})
}

// Get returns one account by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.Svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load user", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": account})
}

// Create inserts a new account from the submitted form.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	account, err := h.Svc.Create(in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": account})
}

// Update replaces an existing account.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	account, err := h.Svc.Update(chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": account})
}

// Delete removes an account.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(chi.URLParam(r, "id")); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to delete user", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"deleted": true}})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	case errors.Is(err, ErrUsernameTaken):
		common.JSONError(w, http.StatusConflict, "USERNAME_TAKEN", "username already in use", nil)
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to save user", nil)
	}
}
