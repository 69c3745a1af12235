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

var _ storage.EventStore = (*EventStore)(nil)

var eventColumns = []string{"id", "name", "location", "event_date"}

// EventStore provides Postgres-backed persistence for events.
type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

// CreateEvent inserts e and returns it with its generated id.
func (s *EventStore) CreateEvent(ctx context.Context, e models.Event) (models.Event, error) {
	query, args, err := psql.Insert("events").
		Columns(eventColumns[1:]...).
		Values(e.Name, e.Location, e.EventDate.Time).
		Suffix("RETURNING " + columnList(eventColumns)).
		ToSql()
	if err != nil {
		return models.Event{}, fmt.Errorf("build insert event: %w", err)
	}
	created, err := scanEvent(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return created, nil
}

// GetEvent fetches an event by id.
func (s *EventStore) GetEvent(ctx context.Context, id int64) (models.Event, error) {
	query, args, err := psql.Select(eventColumns...).From("events").Where("id = ?", id).ToSql()
	if err != nil {
		return models.Event{}, fmt.Errorf("build get event: %w", err)
	}
	e, err := scanEvent(s.db.QueryRowContext(ctx, query, args...))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.Event{}, fmt.Errorf("get event: %w", err)
	}
	return e, err
}

// GetEventDetail loads an event, then its fights joined to both fighters.
func (s *EventStore) GetEventDetail(ctx context.Context, id int64) (models.EventDetail, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return models.EventDetail{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, a.first_name, a.last_name, b.first_name, b.last_name, f.winner_id, f.method, f.round
		FROM fights f
		JOIN fighters a ON a.id = f.fighter_1_id
		JOIN fighters b ON b.id = f.fighter_2_id
		WHERE f.event_id = $1
		ORDER BY f.id`, id)
	if err != nil {
		return models.EventDetail{}, fmt.Errorf("list event fights: %w", err)
	}
	defer rows.Close()

	detail := models.EventDetail{Event: event, Fights: []models.FightSummary{}}
	for rows.Next() {
		var (
			fs       models.FightSummary
			winnerID sql.NullInt64
			method   sql.NullString
			round    sql.NullInt64
		)
		if err := rows.Scan(&fs.ID, &fs.Fighter1.FirstName, &fs.Fighter1.LastName,
			&fs.Fighter2.FirstName, &fs.Fighter2.LastName, &winnerID, &method, &round); err != nil {
			return models.EventDetail{}, fmt.Errorf("scan event fight: %w", err)
		}
		fs.WinnerID = int64Ptr(winnerID)
		fs.Method = stringPtr(method)
		fs.Round = intPtr(round)
		detail.Fights = append(detail.Fights, fs)
	}
	if err := rows.Err(); err != nil {
		return models.EventDetail{}, fmt.Errorf("list event fights: %w", err)
	}
	return detail, nil
}

// ListEvents returns one page of events in id order.
func (s *EventStore) ListEvents(ctx context.Context, page storage.Page) ([]models.Event, error) {
	query, args, err := paginate(psql.Select(eventColumns...).From("events"), page).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list events: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// DeleteEvent removes an event together with every fight on its card.
func (s *EventStore) DeleteEvent(ctx context.Context, id int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM fights WHERE event_id = $1`, id); err != nil {
			return fmt.Errorf("delete event fights: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		if n == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
	return err
}

func scanEvent(row scanner) (models.Event, error) {
	var (
		e        models.Event
		location sql.NullString
		date     sql.NullTime
	)
	if err := row.Scan(&e.ID, &e.Name, &location, &date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Event{}, storage.ErrNotFound
		}
		return models.Event{}, err
	}
	e.Location = stringPtr(location)
	e.EventDate = models.DateOf(date.Time)
	return e, nil
}
