package oracle

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/oracleball/oracleball/internal/config"
	"github.com/oracleball/oracleball/pkg/models"
	"github.com/stretchr/testify/assert"
)

func testOracleConfig() config.OracleConfig {
	return config.OracleConfig{
		MaxGoals:      4,
		MinConfidence: 75,
		MaxConfidence: 98,
	}
}

func testMatch() *models.Match {
	return &models.Match{
		ID:       1,
		HomeTeam: "Barcelona",
		AwayTeam: "Real Madrid",
		League:   "La Liga",
	}
}

func TestEngine_PredictRanges(t *testing.T) {
	e := NewEngine(testOracleConfig(), rand.NewSource(1))
	match := testMatch()

	for i := 0; i < 500; i++ {
		p := e.Predict(match)

		assert.GreaterOrEqual(t, p.HomeScore, 0)
		assert.LessOrEqual(t, p.HomeScore, 4)
		assert.GreaterOrEqual(t, p.AwayScore, 0)
		assert.LessOrEqual(t, p.AwayScore, 4)
		assert.GreaterOrEqual(t, p.Confidence, 75)
		assert.LessOrEqual(t, p.Confidence, 98)
		assert.Equal(t, match.ID, p.MatchID)
		assert.Equal(t, winnerOf(match, p.HomeScore, p.AwayScore), p.Winner)
	}
}

func TestWinnerOf_AllScoreCombinations(t *testing.T) {
	match := testMatch()

	for home := 0; home <= 4; home++ {
		for away := 0; away <= 4; away++ {
			t.Run(fmt.Sprintf("%d-%d", home, away), func(t *testing.T) {
				winner := winnerOf(match, home, away)
				switch {
				case home > away:
					assert.Equal(t, "Barcelona", winner)
				case home < away:
					assert.Equal(t, "Real Madrid", winner)
				default:
					assert.Equal(t, models.WinnerDraw, winner)
				}
			})
		}
	}
}

func TestEngine_DegenerateBounds(t *testing.T) {
	cfg := config.OracleConfig{MaxGoals: 0, MinConfidence: 90, MaxConfidence: 90}
	e := NewEngine(cfg, rand.NewSource(42))
	match := testMatch()

	for i := 0; i < 50; i++ {
		p := e.Predict(match)
		assert.Zero(t, p.HomeScore)
		assert.Zero(t, p.AwayScore)
		assert.Equal(t, 90, p.Confidence)
		assert.Equal(t, models.WinnerDraw, p.Winner)
	}
}

func TestEngine_NilSourceSeedsItself(t *testing.T) {
	e := NewEngine(testOracleConfig(), nil)
	p := e.Predict(testMatch())
	assert.NotEmpty(t, p.Winner)
}
