package auth

import (
	"fmt"

	"github.com/octagoniq/octagoniq-api/internal/models"
)

// RequireRole passes account through when it holds role.
func RequireRole(account models.Account, role models.Role) (models.Account, error) {
	if account.Role != role {
		return models.Account{}, fmt.Errorf("%w: %s role required", ErrForbidden, role)
	}
	return account, nil
}
