// Package handler contains the HTTP handlers for the OracleBall API.
package handler

import (
	"context"
	"net/http"

	"github.com/oracleball/oracleball/internal/api/response"
	"github.com/oracleball/oracleball/pkg/models"
)

// MatchLister defines the store access the matches handler depends on.
type MatchLister interface {
	ListMatches(ctx context.Context) ([]*models.Match, error)
}

// NewListMatchesHandler returns an http.HandlerFunc for GET /api/v1/matches.
func NewListMatchesHandler(st MatchLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := st.ListMatches(r.Context())
		if err != nil {
			response.Error(w, http.StatusInternalServerError,
				"INTERNAL_ERROR", "Failed to load matches", nil)
			return
		}
		if matches == nil {
			matches = []*models.Match{}
		}
		response.JSON(w, matches)
	}
}
