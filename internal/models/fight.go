package models

// Fight is a matchup between two distinct fighters on an event card.
type Fight struct {
	ID         int64   `json:"id"`
	EventID    int64   `json:"event_id"`
	Fighter1ID int64   `json:"fighter_1_id"`
	Fighter2ID int64   `json:"fighter_2_id"`
	WinnerID   *int64  `json:"winner_id"`
	Method     *string `json:"method"`
	Round      *int    `json:"round"`
}
