package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octagoniq/octagoniq-api/internal/models"
	"github.com/octagoniq/octagoniq-api/internal/storage"
)

type stubFinder struct {
	accounts map[string]models.Account
	err      error
}

func (s stubFinder) FindByUsername(_ context.Context, username string) (models.Account, error) {
	if s.err != nil {
		return models.Account{}, s.err
	}
	a, ok := s.accounts[username]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	return a, nil
}

func TestResolver_Resolve(t *testing.T) {
	now := epoch
	tm := newTestTokens(t, &now)
	finder := stubFinder{accounts: map[string]models.Account{
		"jon":     {ID: 1, Username: "jon", Role: models.RoleAdmin, IsActive: true},
		"benched": {ID: 2, Username: "benched", Role: models.RoleUser, IsActive: false},
	}}
	r := NewResolver(tm, finder)
	ctx := context.Background()

	tok, err := tm.Issue("jon", "user", 0)
	require.NoError(t, err)
	account, err := r.Resolve(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(1), account.ID)
	assert.Equal(t, models.RoleAdmin, account.Role, "role comes from the stored account")

	tok, err = tm.Issue("ghost", "admin", 0)
	require.NoError(t, err)
	_, err = r.Resolve(ctx, tok)
	require.ErrorIs(t, err, ErrUnauthenticated)

	tok, err = tm.Issue("benched", "user", 0)
	require.NoError(t, err)
	_, err = r.Resolve(ctx, tok)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = r.Resolve(ctx, "garbage")
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.ErrorIs(t, err, ErrInvalidToken)

	tok, err = tm.Issue("jon", "user", time.Minute)
	require.NoError(t, err)
	now = epoch.Add(2 * time.Minute)
	_, err = r.Resolve(ctx, tok)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolver_StorageFailureIsNotUnauthenticated(t *testing.T) {
	now := epoch
	tm := newTestTokens(t, &now)
	r := NewResolver(tm, stubFinder{err: errors.New("connection reset")})

	tok, err := tm.Issue("jon", "user", 0)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), tok)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthenticated))
}

func TestRequireRole(t *testing.T) {
	admin := models.Account{ID: 1, Role: models.RoleAdmin}
	user := models.Account{ID: 2, Role: models.RoleUser}

	got, err := RequireRole(admin, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, admin, got)

	_, err = RequireRole(user, models.RoleAdmin)
	require.ErrorIs(t, err, ErrForbidden)
	assert.False(t, errors.Is(err, ErrUnauthenticated))
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), models.Account{ID: 9})
	got, ok := PrincipalFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(9), got.ID)
}
