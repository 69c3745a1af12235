package models

// Event is a named card on a given date.
type Event struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Location  *string `json:"location"`
	EventDate Date    `json:"event_date"`
}

// EventDetail is an event with its fights, each side reduced to a name.
type EventDetail struct {
	Event
	Fights []FightSummary `json:"fights"`
}

// FightSummary is the nested fight shape inside EventDetail.
type FightSummary struct {
	ID       int64          `json:"id"`
	Fighter1 FighterSummary `json:"fighter_1"`
	Fighter2 FighterSummary `json:"fighter_2"`
	WinnerID *int64         `json:"winner_id"`
	Method   *string        `json:"method"`
	Round    *int           `json:"round"`
}
