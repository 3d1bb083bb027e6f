package oracle

import "errors"

var (
	// ErrAnalysisInProgress is the busy guard: at most one analysis may be in
	// flight, and a second request is rejected rather than queued.
	ErrAnalysisInProgress = errors.New("analysis already in progress")
	ErrMatchNotFound      = errors.New("match not found")
	ErrSessionClosed      = errors.New("oracle session closed")
)
