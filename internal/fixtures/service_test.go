package fixtures

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oracleball/oracleball/internal/cache"
	"github.com/oracleball/oracleball/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockClient struct {
	fixtures []Fixture
	err      error
	gotDays  int
}

func (c *mockClient) Upcoming(_ context.Context, days int) ([]Fixture, error) {
	c.gotDays = days
	return c.fixtures, c.err
}

type mockStore struct {
	mu        sync.Mutex
	upserted  []*models.Match
	failHome  string
	upsertErr error
}

func (s *mockStore) UpsertMatch(_ context.Context, m *models.Match) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failHome != "" && m.HomeTeam == s.failHome {
		return nil, s.upsertErr
	}
	s.upserted = append(s.upserted, m)
	return m, nil
}

func (s *mockStore) Ping(_ context.Context) error { return nil }
func (s *mockStore) ListMatches(_ context.Context) ([]*models.Match, error) {
	return nil, nil
}
func (s *mockStore) GetMatch(_ context.Context, _ int64) (*models.Match, error) {
	return nil, nil
}
func (s *mockStore) GetAPIKeyByPrefix(_ context.Context, _ string) ([]*models.APIKey, error) {
	return nil, nil
}
func (s *mockStore) UpdateAPIKeyLastUsed(_ context.Context, _ uuid.UUID) error { return nil }
func (s *mockStore) CreateAPIKey(_ context.Context, _ *models.APIKey) error    { return nil }
func (s *mockStore) ListAPIKeys(_ context.Context) ([]*models.APIKey, error)   { return nil, nil }
func (s *mockStore) RevokeAPIKey(_ context.Context, _ uuid.UUID) error         { return nil }

type mockCache struct {
	mu   sync.Mutex
	sets map[string][]byte
}

func newMockCache() *mockCache { return &mockCache{sets: make(map[string][]byte)} }

func (c *mockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets[key] = value
	return nil
}
func (c *mockCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}
func (c *mockCache) Delete(_ context.Context, _ string) error { return nil }
func (c *mockCache) Ping(_ context.Context) error             { return nil }
func (c *mockCache) SetOracleSnapshot(_ context.Context, _ []byte, _ time.Duration) error {
	return nil
}
func (c *mockCache) GetOracleSnapshot(_ context.Context) ([]byte, bool, error) {
	return nil, false, nil
}
func (c *mockCache) IncrWithExpiry(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 0, nil
}

// --- tests ---

func feedFixtures() []Fixture {
	return []Fixture{
		{HomeTeam: "Ajax", AwayTeam: "PSV", League: "Eredivisie",
			KickoffAt: time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)},
		{HomeTeam: "Porto", AwayTeam: "Benfica", League: "Primeira Liga",
			KickoffAt: time.Date(2026, 9, 2, 20, 15, 0, 0, time.UTC)},
	}
}

func TestSync_ImportsAllFixtures(t *testing.T) {
	client := &mockClient{fixtures: feedFixtures()}
	st := &mockStore{}
	ca := newMockCache()

	svc := NewService(client, st, ca)
	result, err := svc.Sync(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, client.gotDays)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, st.upserted, 2)
	assert.Equal(t, models.MatchSourceFeed, st.upserted[0].Source)

	// Sync timestamp lands in the cache.
	_, ok := ca.sets[cache.FixturesSyncKey()]
	assert.True(t, ok)
}

func TestSync_DefaultWindow(t *testing.T) {
	client := &mockClient{}
	svc := NewService(client, &mockStore{}, newMockCache())

	_, err := svc.Sync(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, defaultWindowDays, client.gotDays)
}

func TestSync_FeedFailure(t *testing.T) {
	client := &mockClient{err: ErrFeedUnreachable}
	svc := NewService(client, &mockStore{}, newMockCache())

	_, err := svc.Sync(context.Background(), 1)
	assert.ErrorIs(t, err, ErrFeedUnreachable)
}

func TestSync_SkipsFailedUpserts(t *testing.T) {
	client := &mockClient{fixtures: feedFixtures()}
	st := &mockStore{failHome: "Ajax", upsertErr: errors.New("constraint violation")}

	svc := NewService(client, st, newMockCache())
	result, err := svc.Sync(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, st.upserted, 1)
	assert.Equal(t, "Porto", st.upserted[0].HomeTeam)
}
