package models

import (
	"time"

	"github.com/google/uuid"
)

// WinnerDraw is the literal winner value when both scores are equal.
const WinnerDraw = "Draw"

// Prediction is the randomly generated outcome record for a single analysis.
// It is created wholesale when an analysis completes and replaced wholesale
// by the next request; it is never partially updated and never persisted.
type Prediction struct {
	ID         uuid.UUID `json:"id"`
	MatchID    int64     `json:"match_id"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	HomeScore  int       `json:"home_score"`
	AwayScore  int       `json:"away_score"`
	Confidence int       `json:"confidence"`
	Winner     string    `json:"winner"`
	CreatedAt  time.Time `json:"created_at"`
}
