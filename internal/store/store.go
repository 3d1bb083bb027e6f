package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/oracleball/oracleball/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error

	ListMatches(ctx context.Context) ([]*models.Match, error)
	GetMatch(ctx context.Context, id int64) (*models.Match, error)
	UpsertMatch(ctx context.Context, match *models.Match) (*models.Match, error)

	GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	ListAPIKeys(ctx context.Context) ([]*models.APIKey, error)
	RevokeAPIKey(ctx context.Context, id uuid.UUID) error
}
