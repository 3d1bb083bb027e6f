package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oracleball/oracleball/internal/api/response"
	"github.com/oracleball/oracleball/internal/oracle"
	"github.com/oracleball/oracleball/pkg/models"
)

// OracleSession defines the session operations the oracle handlers depend on.
type OracleSession interface {
	RequestPrediction(ctx context.Context, matchID int64) (*models.Match, error)
	Snapshot() models.OracleSnapshot
}

// NewOracleStatusHandler returns an http.HandlerFunc for GET /api/v1/oracle.
// The frontend polls this every frame it cares to; the snapshot carries the
// status line verbatim.
func NewOracleStatusHandler(session OracleSession) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, session.Snapshot())
	}
}

// NewPredictHandler returns an http.HandlerFunc for POST /api/v1/oracle/predict.
func NewPredictHandler(session OracleSession) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID int64 `json:"match_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.MatchID <= 0 {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "match_id is required", nil)
			return
		}

		if _, err := session.RequestPrediction(r.Context(), req.MatchID); err != nil {
			switch {
			case errors.Is(err, oracle.ErrMatchNotFound):
				response.Error(w, http.StatusNotFound, "MATCH_NOT_FOUND",
					"No match with that id", nil)
			case errors.Is(err, oracle.ErrAnalysisInProgress):
				response.Error(w, http.StatusConflict, "ANALYSIS_IN_PROGRESS",
					"The oracle is already analyzing a match", nil)
			case errors.Is(err, oracle.ErrSessionClosed):
				response.Error(w, http.StatusServiceUnavailable, "ORACLE_UNAVAILABLE",
					"The oracle is shutting down", nil)
			default:
				response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
					"An unexpected error occurred", nil)
			}
			return
		}

		// The analysis was accepted; the snapshot already shows analyzing.
		response.Accepted(w, session.Snapshot())
	}
}
