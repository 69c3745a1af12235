package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/octagoniq/octagoniq-api/internal/auth"
	"github.com/octagoniq/octagoniq-api/internal/http/respond"
	"github.com/octagoniq/octagoniq-api/internal/middleware"
	"github.com/octagoniq/octagoniq-api/internal/models"
	"github.com/octagoniq/octagoniq-api/internal/models/dto"
	"github.com/octagoniq/octagoniq-api/internal/storage"
)

// UserHandler serves account endpoints for signed-in callers.
type UserHandler struct {
	accounts storage.AccountStore
	guard    *middleware.Guard
}

func NewUserHandler(accounts storage.AccountStore, guard *middleware.Guard) *UserHandler {
	return &UserHandler{accounts: accounts, guard: guard}
}

func (h *UserHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /users/me", h.guard.Authenticated(h.handleMe))
	mux.Handle("PATCH /users/{id}/role", h.guard.Admin(h.handleUpdateRole))
}

func (h *UserHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	account, _ := auth.PrincipalFrom(r.Context())
	respond.JSON(w, r, http.StatusOK, account)
}

func (h *UserHandler) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.RoleUpdateRequest
	if !decode(w, r, &req) {
		return
	}

	target, err := h.accounts.GetAccount(r.Context(), id)
	if err != nil {
		storeError(w, r, err, "User not found")
		return
	}
	admin, _ := auth.PrincipalFrom(r.Context())
	if target.ID == admin.ID && req.Role != models.RoleAdmin {
		respond.Error(w, r, http.StatusBadRequest, "You cannot remove your own admin privileges")
		return
	}

	updated, err := h.accounts.UpdateRole(r.Context(), id, req.Role)
	if err != nil {
		storeError(w, r, err, "User not found")
		return
	}

	zerolog.Ctx(r.Context()).Info().
		Int64("account_id", updated.ID).
		Str("role", string(updated.Role)).
		Int64("changed_by", admin.ID).
		Msg("account role updated")
	respond.JSON(w, r, http.StatusOK, dto.RoleUpdateResponse{ID: updated.ID, Username: updated.Username, Role: updated.Role})
}
