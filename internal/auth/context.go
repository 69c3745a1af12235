package auth

import (
	"context"

	"github.com/octagoniq/octagoniq-api/internal/models"
)

type principalKey struct{}

// WithPrincipal stores the resolved account on ctx.
func WithPrincipal(ctx context.Context, account models.Account) context.Context {
	return context.WithValue(ctx, principalKey{}, account)
}

// PrincipalFrom returns the account stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (models.Account, bool) {
	account, ok := ctx.Value(principalKey{}).(models.Account)
	return account, ok
}
