package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/octagoniq/octagoniq-api/internal/auth"
	"github.com/octagoniq/octagoniq-api/internal/http/respond"
	"github.com/octagoniq/octagoniq-api/internal/models"
)

// IdentityResolver recovers the account a bearer token belongs to.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (models.Account, error)
}

// Guard authenticates bearer tokens and enforces roles before a handler runs.
type Guard struct {
	resolver IdentityResolver
}

func NewGuard(resolver IdentityResolver) *Guard {
	return &Guard{resolver: resolver}
}

// Authenticated resolves the caller and stores it on the request context.
func (g *Guard) Authenticated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			unauthorized(w, r, "Not authenticated")
			return
		}
		account, err := g.resolver.Resolve(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				unauthorized(w, r, "Could not validate credentials")
				return
			}
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("resolve principal failed")
			respond.Error(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), account)))
	})
}

// Role authenticates the caller and then requires role.
func (g *Guard) Role(role models.Role, next http.HandlerFunc) http.Handler {
	return g.Authenticated(func(w http.ResponseWriter, r *http.Request) {
		account, _ := auth.PrincipalFrom(r.Context())
		if _, err := auth.RequireRole(account, role); err != nil {
			message := "Insufficient privileges"
			if role == models.RoleAdmin {
				message = "Admin privileges required"
			}
			respond.Error(w, r, http.StatusForbidden, message)
			return
		}
		next(w, r)
	})
}

// Admin is Role(models.RoleAdmin, next).
func (g *Guard) Admin(next http.HandlerFunc) http.Handler {
	return g.Role(models.RoleAdmin, next)
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	respond.Error(w, r, http.StatusUnauthorized, message)
}
