package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/octagoniq/octagoniq-api/internal/dbx"
	"github.com/octagoniq/octagoniq-api/internal/models"
	"github.com/octagoniq/octagoniq-api/internal/storage"
)

// Ensure AccountStore satisfies the storage.AccountStore interface at compile time.
var _ storage.AccountStore = (*AccountStore)(nil)

const accountColumns = "id, username, email, password_hash, role, is_active, created_at"

// AccountStore provides Postgres-backed persistence for accounts.
type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

// CreateAccount inserts a new account. Username is checked before email so a
// duplicate username always reports ErrUsernameTaken.
func (s *AccountStore) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if account.Role == "" {
		account.Role = models.RoleUser
	}

	var created models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		taken, err := exists(ctx, tx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`, account.Username)
		if err != nil {
			return err
		}
		if taken {
			return storage.ErrUsernameTaken
		}
		taken, err = exists(ctx, tx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, account.Email)
		if err != nil {
			return err
		}
		if taken {
			return storage.ErrEmailTaken
		}

		row := tx.QueryRowContext(ctx, `
			INSERT INTO accounts (username, email, password_hash, role, is_active)
			VALUES ($1, $2, $3, $4, TRUE)
			RETURNING `+accountColumns,
			account.Username, account.Email, account.PasswordHash, string(account.Role))
		created, err = scanAccount(row)
		return err
	})
	if err != nil {
		if pgErr, ok := pgError(err, codeUniqueViolation); ok {
			switch pgErr.ConstraintName {
			case "accounts_username_key":
				return models.Account{}, storage.ErrUsernameTaken
			case "accounts_email_key":
				return models.Account{}, storage.ErrEmailTaken
			}
			return models.Account{}, storage.ErrAlreadyExists
		}
		return models.Account{}, fmt.Errorf("create account: %w", err)
	}
	return created, nil
}

// GetAccount fetches an account by id.
func (s *AccountStore) GetAccount(ctx context.Context, id int64) (models.Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return wrapAccount(scanAccount(row))
}

// FindByUsername fetches an account by username.
func (s *AccountStore) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username)
	return wrapAccount(scanAccount(row))
}

// UpdateRole sets the role of an account and returns the reloaded row.
func (s *AccountStore) UpdateRole(ctx context.Context, id int64, role models.Role) (models.Account, error) {
	if !role.Valid() {
		return models.Account{}, fmt.Errorf("%w: %q", storage.ErrInvalidRole, role)
	}
	row := s.db.QueryRowContext(ctx, `UPDATE accounts SET role = $1 WHERE id = $2 RETURNING `+accountColumns, string(role), id)
	return wrapAccount(scanAccount(row))
}

func wrapAccount(account models.Account, err error) (models.Account, error) {
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.Account{}, fmt.Errorf("query account: %w", err)
	}
	return account, err
}

func scanAccount(row scanner) (models.Account, error) {
	var a models.Account
	var role string
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &role, &a.IsActive, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, storage.ErrNotFound
		}
		return models.Account{}, err
	}
	a.Role = models.Role(role)
	return a, nil
}

func exists(ctx context.Context, db dbx.DBTX, query string, args ...any) (bool, error) {
	var ok bool
	if err := db.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
