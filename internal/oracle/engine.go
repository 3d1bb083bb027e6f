package oracle

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oracleball/oracleball/internal/config"
	"github.com/oracleball/oracleball/pkg/models"
)

// Engine generates the random outcome for a completed analysis. There is no
// model behind it: scores and confidence are uniform draws within the
// configured bounds.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
	cfg config.OracleConfig
}

// NewEngine creates an Engine drawing from the given source. Pass a seeded
// source in tests for deterministic output.
func NewEngine(cfg config.OracleConfig, src rand.Source) *Engine {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Engine{rng: rand.New(src), cfg: cfg}
}

// Predict draws a fresh outcome for the match. Scores are independent uniform
// integers in [0, MaxGoals]; confidence is uniform in
// [MinConfidence, MaxConfidence].
func (e *Engine) Predict(match *models.Match) models.Prediction {
	e.mu.Lock()
	homeScore := e.rng.Intn(e.cfg.MaxGoals + 1)
	awayScore := e.rng.Intn(e.cfg.MaxGoals + 1)
	confidence := e.cfg.MinConfidence + e.rng.Intn(e.cfg.MaxConfidence-e.cfg.MinConfidence+1)
	e.mu.Unlock()

	return models.Prediction{
		ID:         uuid.New(),
		MatchID:    match.ID,
		HomeTeam:   match.HomeTeam,
		AwayTeam:   match.AwayTeam,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		Confidence: confidence,
		Winner:     winnerOf(match, homeScore, awayScore),
		CreatedAt:  time.Now().UTC(),
	}
}

// winnerOf resolves the winner name from the scoreline. Equal scores are the
// literal "Draw".
func winnerOf(match *models.Match, homeScore, awayScore int) string {
	switch {
	case homeScore > awayScore:
		return match.HomeTeam
	case homeScore < awayScore:
		return match.AwayTeam
	default:
		return models.WinnerDraw
	}
}
