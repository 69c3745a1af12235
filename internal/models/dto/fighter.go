package dto

import "github.com/octagoniq/octagoniq-api/internal/models"

type FighterCreate struct {
	FirstName   string       `json:"first_name" validate:"required,max=100"`
	LastName    string       `json:"last_name" validate:"required,max=100"`
	Nickname    *string      `json:"nickname" validate:"omitempty,max=100"`
	DateOfBirth *models.Date `json:"date_of_birth"`
	HeightCM    *int         `json:"height_cm" validate:"omitempty,min=1,max=300"`
	ReachCM     *int         `json:"reach_cm" validate:"omitempty,min=1,max=300"`
	Stance      *string      `json:"stance" validate:"omitempty,max=50"`
	Wins        int          `json:"wins" validate:"min=0"`
	Losses      int          `json:"losses" validate:"min=0"`
	Draws       int          `json:"draws" validate:"min=0"`
}

// Fighter converts the request into a new, unsaved fighter.
func (c FighterCreate) Fighter() models.Fighter {
	return models.Fighter{
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Nickname:    c.Nickname,
		DateOfBirth: c.DateOfBirth,
		HeightCM:    c.HeightCM,
		ReachCM:     c.ReachCM,
		Stance:      c.Stance,
		Wins:        c.Wins,
		Losses:      c.Losses,
		Draws:       c.Draws,
	}
}

type FighterUpdate struct {
	FirstName   *string      `json:"first_name" validate:"omitnil,min=1,max=100"`
	LastName    *string      `json:"last_name" validate:"omitnil,min=1,max=100"`
	Nickname    *string      `json:"nickname" validate:"omitempty,max=100"`
	DateOfBirth *models.Date `json:"date_of_birth"`
	HeightCM    *int         `json:"height_cm" validate:"omitempty,min=1,max=300"`
	ReachCM     *int         `json:"reach_cm" validate:"omitempty,min=1,max=300"`
	Stance      *string      `json:"stance" validate:"omitempty,max=50"`
	Wins        *int         `json:"wins" validate:"omitempty,min=0"`
	Losses      *int         `json:"losses" validate:"omitempty,min=0"`
	Draws       *int         `json:"draws" validate:"omitempty,min=0"`
}

func (u FighterUpdate) Patch() models.FighterPatch {
	return models.FighterPatch{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Nickname:    u.Nickname,
		DateOfBirth: u.DateOfBirth,
		HeightCM:    u.HeightCM,
		ReachCM:     u.ReachCM,
		Stance:      u.Stance,
		Wins:        u.Wins,
		Losses:      u.Losses,
		Draws:       u.Draws,
	}
}
