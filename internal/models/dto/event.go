package dto

import "github.com/octagoniq/octagoniq-api/internal/models"

type EventCreate struct {
	Name      string       `json:"name" validate:"required,max=200"`
	Location  *string      `json:"location" validate:"omitempty,max=200"`
	EventDate *models.Date `json:"event_date" validate:"required"`
}

func (c EventCreate) Event() models.Event {
	return models.Event{Name: c.Name, Location: c.Location, EventDate: *c.EventDate}
}

type FightCreate struct {
	EventID    int64   `json:"event_id" validate:"required,gt=0"`
	Fighter1ID int64   `json:"fighter_1_id" validate:"required,gt=0"`
	Fighter2ID int64   `json:"fighter_2_id" validate:"required,gt=0"`
	WinnerID   *int64  `json:"winner_id" validate:"omitempty,gt=0"`
	Method     *string `json:"method" validate:"omitempty,max=100"`
	Round      *int    `json:"round" validate:"omitempty,min=1,max=12"`
}

func (c FightCreate) Fight() models.Fight {
	return models.Fight{
		EventID:    c.EventID,
		Fighter1ID: c.Fighter1ID,
		Fighter2ID: c.Fighter2ID,
		WinnerID:   c.WinnerID,
		Method:     c.Method,
		Round:      c.Round,
	}
}
