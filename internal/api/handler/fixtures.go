package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/oracleball/oracleball/internal/api/response"
	"github.com/oracleball/oracleball/internal/fixtures"
)

// FixturesSyncer defines the sync operation the fixtures handler depends on.
type FixturesSyncer interface {
	Sync(ctx context.Context, days int) (*fixtures.SyncResult, error)
}

// NewSyncFixturesHandler returns an http.HandlerFunc for
// POST /api/v1/admin/fixtures/sync. The body is optional.
func NewSyncFixturesHandler(svc FixturesSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Days int `json:"days"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Days < 0 {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "days must be >= 0", nil)
			return
		}

		result, err := svc.Sync(r.Context(), req.Days)
		if err != nil {
			switch {
			case errors.Is(err, fixtures.ErrFeedTimeout):
				response.Error(w, http.StatusGatewayTimeout, "FEED_TIMEOUT",
					"The fixtures feed took too long to answer", nil)
			case errors.Is(err, fixtures.ErrFeedUnreachable), errors.Is(err, fixtures.ErrFeedError):
				response.Error(w, http.StatusBadGateway, "FEED_UNAVAILABLE",
					"The fixtures feed is not available", nil)
			default:
				response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
					"An unexpected error occurred", nil)
			}
			return
		}

		response.JSON(w, result)
	}
}
