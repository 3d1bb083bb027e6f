package models

const (
	OracleStatusIdle      = "idle"
	OracleStatusAnalyzing = "analyzing"
	OracleStatusComplete  = "complete"
)

// OracleSnapshot is a point-in-time view of the oracle session, safe to hand
// to the presentation layer. The frontend polls this; it never mutates it.
type OracleSnapshot struct {
	Status     string      `json:"status"`
	StatusLine string      `json:"status_line"`
	Analyzing  bool        `json:"analyzing"`
	Match      *Match      `json:"match,omitempty"`
	Prediction *Prediction `json:"prediction,omitempty"`
}
