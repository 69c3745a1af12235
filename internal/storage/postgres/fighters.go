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

var _ storage.FighterStore = (*FighterStore)(nil)

var fighterColumns = []string{
	"id", "first_name", "last_name", "nickname", "date_of_birth",
	"height_cm", "reach_cm", "stance", "wins", "losses", "draws",
}

// FighterStore provides Postgres-backed persistence for fighters.
type FighterStore struct {
	db *sql.DB
}

func NewFighterStore(db *sql.DB) *FighterStore {
	return &FighterStore{db: db}
}

// CreateFighter inserts f and returns it with its generated id.
func (s *FighterStore) CreateFighter(ctx context.Context, f models.Fighter) (models.Fighter, error) {
	query, args, err := psql.Insert("fighters").
		Columns(fighterColumns[1:]...).
		Values(f.FirstName, f.LastName, f.Nickname, dateArg(f.DateOfBirth),
			f.HeightCM, f.ReachCM, f.Stance, f.Wins, f.Losses, f.Draws).
		Suffix("RETURNING " + columnList(fighterColumns)).
		ToSql()
	if err != nil {
		return models.Fighter{}, fmt.Errorf("build insert fighter: %w", err)
	}
	created, err := scanFighter(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Fighter{}, fmt.Errorf("insert fighter: %w", err)
	}
	return created, nil
}

// GetFighter fetches a fighter by id.
func (s *FighterStore) GetFighter(ctx context.Context, id int64) (models.Fighter, error) {
	return getFighter(ctx, s.db, id, false)
}

// ListFighters returns one page of fighters in id order.
func (s *FighterStore) ListFighters(ctx context.Context, page storage.Page) ([]models.Fighter, error) {
	query, args, err := paginate(psql.Select(fighterColumns...).From("fighters"), page).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list fighters: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fighters: %w", err)
	}
	defer rows.Close()

	fighters := []models.Fighter{}
	for rows.Next() {
		f, err := scanFighter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fighter: %w", err)
		}
		fighters = append(fighters, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fighters: %w", err)
	}
	return fighters, nil
}

// UpdateFighter locks the row, merges patch into it and writes it back.
func (s *FighterStore) UpdateFighter(ctx context.Context, id int64, patch models.FighterPatch) (models.Fighter, error) {
	var updated models.Fighter
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := getFighter(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if patch.Empty() {
			updated = current
			return nil
		}
		current.Apply(patch)

		query, args, err := psql.Update("fighters").
			Set("first_name", current.FirstName).
			Set("last_name", current.LastName).
			Set("nickname", current.Nickname).
			Set("date_of_birth", dateArg(current.DateOfBirth)).
			Set("height_cm", current.HeightCM).
			Set("reach_cm", current.ReachCM).
			Set("stance", current.Stance).
			Set("wins", current.Wins).
			Set("losses", current.Losses).
			Set("draws", current.Draws).
			Where("id = ?", id).
			Suffix("RETURNING " + columnList(fighterColumns)).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update fighter: %w", err)
		}
		updated, err = scanFighter(tx.QueryRowContext(ctx, query, args...))
		return err
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Fighter{}, err
		}
		return models.Fighter{}, fmt.Errorf("update fighter: %w", err)
	}
	return updated, nil
}

// DeleteFighter removes a fighter. Fighters on any fight card cannot be deleted.
func (s *FighterStore) DeleteFighter(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM fighters WHERE id = $1`, id)
	if err != nil {
		if _, ok := pgError(err, codeForeignKeyViolation); ok {
			return storage.ErrFighterInUse
		}
		return fmt.Errorf("delete fighter: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete fighter: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func getFighter(ctx context.Context, db dbx.DBTX, id int64, forUpdate bool) (models.Fighter, error) {
	b := psql.Select(fighterColumns...).From("fighters").Where("id = ?", id)
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return models.Fighter{}, fmt.Errorf("build get fighter: %w", err)
	}
	f, err := scanFighter(db.QueryRowContext(ctx, query, args...))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.Fighter{}, fmt.Errorf("get fighter: %w", err)
	}
	return f, err
}

func scanFighter(row scanner) (models.Fighter, error) {
	var (
		f                 models.Fighter
		nickname, stance  sql.NullString
		dob               sql.NullTime
		heightCM, reachCM sql.NullInt64
	)
	err := row.Scan(&f.ID, &f.FirstName, &f.LastName, &nickname, &dob,
		&heightCM, &reachCM, &stance, &f.Wins, &f.Losses, &f.Draws)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Fighter{}, storage.ErrNotFound
		}
		return models.Fighter{}, err
	}
	f.Nickname = stringPtr(nickname)
	f.Stance = stringPtr(stance)
	f.DateOfBirth = datePtr(dob)
	f.HeightCM = intPtr(heightCM)
	f.ReachCM = intPtr(reachCM)
	return f, nil
}
