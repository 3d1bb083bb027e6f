// Package models contains shared data models used across the OracleBall codebase.
package models

import "time"

// Match represents a fixture the oracle can be asked about. Matches are
// immutable once loaded: they come from the seeded list or the fixtures feed
// and are never edited through the API.
type Match struct {
	ID        int64     `db:"id"         json:"id"`
	HomeTeam  string    `db:"home_team"  json:"home_team"`
	AwayTeam  string    `db:"away_team"  json:"away_team"`
	League    string    `db:"league"     json:"league"`
	KickoffAt time.Time `db:"kickoff_at" json:"kickoff_at"`
	Source    string    `db:"source"     json:"source"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	// MatchSourceSeed marks matches that shipped with the schema.
	MatchSourceSeed = "seed"
	// MatchSourceFeed marks matches imported from the fixtures feed.
	MatchSourceFeed = "feed"
)
