package handlers

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/octagoniq/octagoniq-api/internal/auth"
	"github.com/octagoniq/octagoniq-api/internal/http/respond"
	"github.com/octagoniq/octagoniq-api/internal/models"
	"github.com/octagoniq/octagoniq-api/internal/models/dto"
	"github.com/octagoniq/octagoniq-api/internal/storage"
)

// AuthHandler owns the register/login endpoints.
type AuthHandler struct {
	accounts storage.AccountStore
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(accounts storage.AccountStore, hasher *auth.PasswordHasher, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{accounts: accounts, hasher: hasher, tokens: tokens}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !readJSON(w, r, &req) {
		return
	}
	req.Normalize()
	if !check(w, r, &req) {
		return
	}
	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			respond.Error(w, r, http.StatusBadRequest, "password must be at most 72 bytes")
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("hash password failed")
		respond.Error(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	created, err := h.accounts.CreateAccount(r.Context(), models.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	})
	if err != nil {
		storeError(w, r, err, "User not found")
		return
	}

	zerolog.Ctx(r.Context()).Info().Int64("account_id", created.ID).Msg("account registered")
	respond.JSON(w, r, http.StatusCreated, dto.RegisterResponse{
		ID:       created.ID,
		Username: created.Username,
		Email:    created.Email,
		IsActive: created.IsActive,
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if isForm(r) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			respond.Error(w, r, http.StatusBadRequest, "invalid form payload")
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	} else if !readJSON(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if !check(w, r, &req) {
		return
	}

	account, err := h.accounts.FindByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			invalidCredentials(w, r)
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("login lookup failed")
		respond.Error(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !account.IsActive || !h.hasher.Verify(req.Password, account.PasswordHash) {
		invalidCredentials(w, r)
		return
	}

	token, err := h.tokens.Issue(account.Username, string(account.Role), 0)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("issue token failed")
		respond.Error(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	respond.JSON(w, r, http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func isForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/x-www-form-urlencoded"
}

func invalidCredentials(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	respond.Error(w, r, http.StatusUnauthorized, "Invalid credentials")
}
