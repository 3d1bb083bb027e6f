package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oracleball/oracleball/internal/cache"
	"github.com/oracleball/oracleball/internal/store"
	"github.com/oracleball/oracleball/pkg/models"
)

// defaultWindowDays is how far ahead a sync looks when the caller does not say.
const defaultWindowDays = 7

// SyncResult reports what a sync run did.
type SyncResult struct {
	Fetched  int       `json:"fetched"`
	Imported int       `json:"imported"`
	SyncedAt time.Time `json:"synced_at"`
}

// Service imports upcoming fixtures from the feed into the match table.
type Service struct {
	client Client
	store  store.Store
	cache  cache.Cache
}

// NewService creates a sync service.
func NewService(client Client, st store.Store, ca cache.Cache) *Service {
	return &Service{client: client, store: st, cache: ca}
}

// Sync fetches upcoming fixtures and upserts them. Individual upsert failures
// are logged and skipped; the run fails only when the feed itself does.
func (s *Service) Sync(ctx context.Context, days int) (*SyncResult, error) {
	if days <= 0 {
		days = defaultWindowDays
	}

	fetched, err := s.client.Upcoming(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("fetching fixtures: %w", err)
	}

	imported := 0
	for _, f := range fetched {
		match := &models.Match{
			HomeTeam:  f.HomeTeam,
			AwayTeam:  f.AwayTeam,
			League:    f.League,
			KickoffAt: f.KickoffAt,
			Source:    models.MatchSourceFeed,
		}
		if _, err := s.store.UpsertMatch(ctx, match); err != nil {
			slog.Warn("skipping fixture",
				"home", f.HomeTeam, "away", f.AwayTeam, "error", err)
			continue
		}
		imported++
	}

	result := &SyncResult{
		Fetched:  len(fetched),
		Imported: imported,
		SyncedAt: time.Now().UTC(),
	}
	_ = s.cache.Set(ctx, cache.FixturesSyncKey(),
		[]byte(result.SyncedAt.Format(time.RFC3339)), 24*time.Hour)

	return result, nil
}
