package postgres

import (
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/octagoniq/octagoniq-api/internal/models"
	"github.com/octagoniq/octagoniq-api/internal/storage"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type scanner interface {
	Scan(dest ...any) error
}

func pgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

func paginate(b sq.SelectBuilder, page storage.Page) sq.SelectBuilder {
	return b.OrderBy("id").Offset(uint64(page.Skip)).Limit(uint64(page.Limit))
}

func columnList(cols []string) string {
	return strings.Join(cols, ", ")
}

func dateArg(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

func datePtr(nt sql.NullTime) *models.Date {
	if !nt.Valid {
		return nil
	}
	d := models.DateOf(nt.Time)
	return &d
}
