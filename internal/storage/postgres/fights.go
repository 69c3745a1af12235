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

var _ storage.FightStore = (*FightStore)(nil)

var fightColumns = []string{"id", "event_id", "fighter_1_id", "fighter_2_id", "winner_id", "method", "round"}

// FightStore provides Postgres-backed persistence for fights.
type FightStore struct {
	db *sql.DB
}

func NewFightStore(db *sql.DB) *FightStore {
	return &FightStore{db: db}
}

// CreateFight validates the matchup and its references, then inserts it.
// Rule violations are reported before any row is staged.
func (s *FightStore) CreateFight(ctx context.Context, f models.Fight) (models.Fight, error) {
	if err := storage.ValidateFight(f); err != nil {
		return models.Fight{}, err
	}

	var created models.Fight
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ok, err := exists(ctx, tx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, f.EventID)
		if err != nil {
			return fmt.Errorf("check event: %w", err)
		}
		if !ok {
			return storage.ErrEventNotFound
		}

		var found int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM fighters WHERE id IN ($1, $2)`, f.Fighter1ID, f.Fighter2ID).Scan(&found); err != nil {
			return fmt.Errorf("check fighters: %w", err)
		}
		if found != 2 {
			return storage.ErrFighterNotFound
		}

		query, args, err := psql.Insert("fights").
			Columns(fightColumns[1:]...).
			Values(f.EventID, f.Fighter1ID, f.Fighter2ID, f.WinnerID, f.Method, f.Round).
			Suffix("RETURNING " + columnList(fightColumns)).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert fight: %w", err)
		}
		created, err = scanFight(tx.QueryRowContext(ctx, query, args...))
		return err
	})
	if err != nil {
		if pgErr, ok := pgError(err, codeForeignKeyViolation); ok {
			if pgErr.ConstraintName == "fights_event_id_fkey" {
				return models.Fight{}, storage.ErrEventNotFound
			}
			return models.Fight{}, storage.ErrFighterNotFound
		}
		if isFightRuleError(err) {
			return models.Fight{}, err
		}
		return models.Fight{}, fmt.Errorf("create fight: %w", err)
	}
	return created, nil
}

// GetFight fetches a fight by id.
func (s *FightStore) GetFight(ctx context.Context, id int64) (models.Fight, error) {
	query, args, err := psql.Select(fightColumns...).From("fights").Where("id = ?", id).ToSql()
	if err != nil {
		return models.Fight{}, fmt.Errorf("build get fight: %w", err)
	}
	f, err := scanFight(s.db.QueryRowContext(ctx, query, args...))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.Fight{}, fmt.Errorf("get fight: %w", err)
	}
	return f, err
}

// ListFights returns one page of fights in id order.
func (s *FightStore) ListFights(ctx context.Context, page storage.Page) ([]models.Fight, error) {
	query, args, err := paginate(psql.Select(fightColumns...).From("fights"), page).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list fights: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fights: %w", err)
	}
	defer rows.Close()

	fights := []models.Fight{}
	for rows.Next() {
		f, err := scanFight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fight: %w", err)
		}
		fights = append(fights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fights: %w", err)
	}
	return fights, nil
}

func isFightRuleError(err error) bool {
	return errors.Is(err, storage.ErrEventNotFound) ||
		errors.Is(err, storage.ErrFighterNotFound)
}

func scanFight(row scanner) (models.Fight, error) {
	var (
		f        models.Fight
		winnerID sql.NullInt64
		method   sql.NullString
		round    sql.NullInt64
	)
	if err := row.Scan(&f.ID, &f.EventID, &f.Fighter1ID, &f.Fighter2ID, &winnerID, &method, &round); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Fight{}, storage.ErrNotFound
		}
		return models.Fight{}, err
	}
	f.WinnerID = int64Ptr(winnerID)
	f.Method = stringPtr(method)
	f.Round = intPtr(round)
	return f, nil
}
