package models

// Fighter is a combatant profile with a win/loss/draw record.
type Fighter struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Nickname    *string `json:"nickname"`
	DateOfBirth *Date   `json:"date_of_birth"`
	HeightCM    *int    `json:"height_cm"`
	ReachCM     *int    `json:"reach_cm"`
	Stance      *string `json:"stance"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Draws       int     `json:"draws"`
}

// FighterPatch carries the caller-supplied subset of a fighter update.
// A nil field leaves the stored value untouched.
type FighterPatch struct {
	FirstName   *string
	LastName    *string
	Nickname    *string
	DateOfBirth *Date
	HeightCM    *int
	ReachCM     *int
	Stance      *string
	Wins        *int
	Losses      *int
	Draws       *int
}

// Apply merges p into f field by field.
func (f *Fighter) Apply(p FighterPatch) {
	if p.FirstName != nil {
		f.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		f.LastName = *p.LastName
	}
	if p.Nickname != nil {
		f.Nickname = p.Nickname
	}
	if p.DateOfBirth != nil {
		f.DateOfBirth = p.DateOfBirth
	}
	if p.HeightCM != nil {
		f.HeightCM = p.HeightCM
	}
	if p.ReachCM != nil {
		f.ReachCM = p.ReachCM
	}
	if p.Stance != nil {
		f.Stance = p.Stance
	}
	if p.Wins != nil {
		f.Wins = *p.Wins
	}
	if p.Losses != nil {
		f.Losses = *p.Losses
	}
	if p.Draws != nil {
		f.Draws = *p.Draws
	}
}

// Empty reports whether the patch changes nothing.
func (p FighterPatch) Empty() bool {
	return p == FighterPatch{}
}

// FighterSummary is the name-only view of a fighter nested in event responses.
type FighterSummary struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
