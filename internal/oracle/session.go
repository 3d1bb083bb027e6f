package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oracleball/oracleball/internal/cache"
	"github.com/oracleball/oracleball/internal/store"
	"github.com/oracleball/oracleball/pkg/models"
)

const (
	statusLineIdle = "ORACLE READY // SELECT A MATCH"

	// snapshotTTL bounds the Redis mirror. It only needs to outlive the
	// analysis delay plus a polling interval.
	snapshotTTL = time.Minute
)

// Session is the prediction state controller. It owns the analyzing flag,
// the selected match, and the last computed prediction. There is exactly one
// session per server, matching the single oracle ball on the page.
//
// Invariant: at most one analysis is in flight. While analyzing, the prior
// prediction is already cleared (it goes away at request time, not at
// completion) and further requests fail with ErrAnalysisInProgress.
type Session struct {
	store  store.Store
	cache  cache.Cache
	engine *Engine
	clock  Clock
	delay  time.Duration

	mu        sync.Mutex
	analyzing bool
	selected  *models.Match
	current   *models.Prediction
	pending   Timer
	closed    bool
}

// NewSession creates the session. delay is how long the fake analysis takes
// before the deferred completion fires.
func NewSession(st store.Store, ca cache.Cache, engine *Engine, clock Clock, delay time.Duration) *Session {
	return &Session{
		store:  st,
		cache:  ca,
		engine: engine,
		clock:  clock,
		delay:  delay,
	}
}

// RequestPrediction starts an analysis for the given match. The synchronous
// part selects the match, raises the analyzing flag, and clears the previous
// prediction; the deferred part fires after the configured delay and installs
// the generated outcome. The scheduled completion is not user-cancellable.
func (s *Session) RequestPrediction(ctx context.Context, matchID int64) (*models.Match, error) {
	match, err := s.store.GetMatch(ctx, matchID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading match %d: %w", matchID, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.analyzing {
		s.mu.Unlock()
		return nil, ErrAnalysisInProgress
	}

	s.selected = match
	s.analyzing = true
	s.current = nil
	s.pending = s.clock.AfterFunc(s.delay, func() { s.complete(match) })
	s.mu.Unlock()

	s.mirror(ctx)
	return match, nil
}

// complete is the deferred effect of RequestPrediction. It runs on the
// scheduler goroutine once per request; a completion racing Close is dropped.
func (s *Session) complete(match *models.Match) {
	prediction := s.engine.Predict(match)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.current = &prediction
	s.analyzing = false
	s.pending = nil
	s.mu.Unlock()

	s.mirror(context.Background())
}

// Snapshot returns a point-in-time view of the session for the presentation
// layer. Readers never observe a prediction while analyzing is true.
func (s *Session) Snapshot() models.OracleSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.analyzing:
		return models.OracleSnapshot{
			Status:     models.OracleStatusAnalyzing,
			StatusLine: fmt.Sprintf("ANALYZING: %s VS %s...", s.selected.HomeTeam, s.selected.AwayTeam),
			Analyzing:  true,
			Match:      s.selected,
		}
	case s.current != nil:
		return models.OracleSnapshot{
			Status:     models.OracleStatusComplete,
			StatusLine: "PREDICTION COMPLETE // WINNER: " + strings.ToUpper(s.current.Winner),
			Match:      s.selected,
			Prediction: s.current,
		}
	default:
		return models.OracleSnapshot{
			Status:     models.OracleStatusIdle,
			StatusLine: statusLineIdle,
		}
	}
}

// Close tears the session down: a pending completion is cancelled and later
// requests fail with ErrSessionClosed. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// mirror pushes the current snapshot into Redis, best effort. The session
// state is authoritative; a failed mirror only costs pollers a cache miss.
func (s *Session) mirror(ctx context.Context) {
	payload, err := json.Marshal(s.Snapshot())
	if err != nil {
		return
	}
	_ = s.cache.SetOracleSnapshot(ctx, payload, snapshotTTL)
}
