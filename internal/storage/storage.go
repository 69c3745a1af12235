package storage

import (
	"context"
	"errors"

	"github.com/octagoniq/octagoniq-api/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)

// ErrInvalidRole rejects a role outside the known set.
var ErrInvalidRole = errors.New("invalid role")

// ErrFighterInUse indicates a fighter still referenced by fights.
var ErrFighterInUse = errors.New("fighter is referenced by existing fights")

// Fight reference failures, each mapped to its own client status.
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrFighterNotFound = errors.New("fighter not found")
	ErrSameFighter     = errors.New("a fighter cannot fight themselves")
	ErrInvalidWinner   = errors.New("winner must be one of the two fighters")
)

// MaxPageLimit caps how many rows a single list call returns.
const MaxPageLimit = 100

// Page is an offset/limit window over a stable id ordering.
type Page struct {
	Skip  int
	Limit int
}

// DefaultPage is used when the caller supplies no window.
var DefaultPage = Page{Skip: 0, Limit: MaxPageLimit}

// Valid reports whether the window is within bounds.
func (p Page) Valid() bool {
	return p.Skip >= 0 && p.Limit >= 1 && p.Limit <= MaxPageLimit
}

// AccountStore captures persistence operations for accounts.
type AccountStore interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	GetAccount(ctx context.Context, id int64) (models.Account, error)
	FindByUsername(ctx context.Context, username string) (models.Account, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) (models.Account, error)
}

// FighterStore captures persistence operations for fighters.
type FighterStore interface {
	CreateFighter(ctx context.Context, fighter models.Fighter) (models.Fighter, error)
	GetFighter(ctx context.Context, id int64) (models.Fighter, error)
	ListFighters(ctx context.Context, page Page) ([]models.Fighter, error)
	UpdateFighter(ctx context.Context, id int64, patch models.FighterPatch) (models.Fighter, error)
	DeleteFighter(ctx context.Context, id int64) error
}

// EventStore captures persistence operations for events.
type EventStore interface {
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)
	GetEvent(ctx context.Context, id int64) (models.Event, error)
	GetEventDetail(ctx context.Context, id int64) (models.EventDetail, error)
	ListEvents(ctx context.Context, page Page) ([]models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// FightStore captures persistence operations for fights.
type FightStore interface {
	CreateFight(ctx context.Context, fight models.Fight) (models.Fight, error)
	GetFight(ctx context.Context, id int64) (models.Fight, error)
	ListFights(ctx context.Context, page Page) ([]models.Fight, error)
}

// ValidateFight checks the rules that need no lookups: distinct fighters and
// a winner drawn from them.
func ValidateFight(f models.Fight) error {
	if f.Fighter1ID == f.Fighter2ID {
		return ErrSameFighter
	}
	if f.WinnerID != nil && *f.WinnerID != f.Fighter1ID && *f.WinnerID != f.Fighter2ID {
		return ErrInvalidWinner
	}
	return nil
}
