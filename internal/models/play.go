package models

// Play is a single play from a season's play-by-play dataset. Plays are
// immutable once ingested; every derived metric recomputes from the play set
// rather than mutating it.
type Play struct {
	GameID            string   `db:"game_id" json:"game_id" validate:"required"`
	Season            int      `db:"season" json:"season" validate:"required"`
	Week              int      `db:"week" json:"week"`
	SeasonType        string   `db:"season_type" json:"season_type"`
	OffenseTeam       string   `db:"offense_team" json:"offense_team"`
	DefenseTeam       string   `db:"defense_team" json:"defense_team"`
	Drive             *int     `db:"drive" json:"drive"`
	YardsToGoal       *float64 `db:"yards_to_goal" json:"yards_to_goal"`
	IsRush            bool     `db:"is_rush" json:"is_rush"`
	IsPass            bool     `db:"is_pass" json:"is_pass"`
	IsTouchdown       bool     `db:"is_touchdown" json:"is_touchdown"`
	IsTwoPointAttempt bool     `db:"is_two_point_attempt" json:"is_two_point_attempt"`
	RusherID          string   `db:"rusher_id" json:"rusher_id"`
	RusherName        string   `db:"rusher_name" json:"rusher_name"`
	ReceiverID        string   `db:"receiver_id" json:"receiver_id"`
	ReceiverName      string   `db:"receiver_name" json:"receiver_name"`
}

// HasDriveKey reports whether the play can participate in drive grouping.
// Plays with an unknown game or drive never share a bucket with each other.
func (p *Play) HasDriveKey() bool {
	return p.GameID != "" && p.Drive != nil
}

// InsideRedZone reports whether the snap was at or inside the 20 yard line.
// Plays with no recorded yard line are never red-zone plays.
func (p *Play) InsideRedZone() bool {
	return p.YardsToGoal != nil && *p.YardsToGoal <= 20
}

// IsRegularSeason reports whether the play belongs to a regular-season game.
func (p *Play) IsRegularSeason() bool {
	return p.SeasonType == "REG"
}
