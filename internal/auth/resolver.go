package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/octagoniq/octagoniq-api/internal/models"
	"github.com/octagoniq/octagoniq-api/internal/storage"
)

// AccountFinder is the slice of the account store the resolver needs.
type AccountFinder interface {
	FindByUsername(ctx context.Context, username string) (models.Account, error)
}

// Resolver turns a bearer token into the account it was issued for.
type Resolver struct {
	tokens   *TokenManager
	accounts AccountFinder
}

func NewResolver(tokens *TokenManager, accounts AccountFinder) *Resolver {
	return &Resolver{tokens: tokens, accounts: accounts}
}

// Resolve fails with ErrUnauthenticated for bad tokens, unknown subjects and
// inactive accounts. Storage failures are returned as they are.
func (r *Resolver) Resolve(ctx context.Context, token string) (models.Account, error) {
	claims, err := r.tokens.Verify(token)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	account, err := r.accounts.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Account{}, fmt.Errorf("%w: unknown subject", ErrUnauthenticated)
		}
		return models.Account{}, fmt.Errorf("resolve principal: %w", err)
	}
	if !account.IsActive {
		return models.Account{}, fmt.Errorf("%w: account inactive", ErrUnauthenticated)
	}
	return account, nil
}
