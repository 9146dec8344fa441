package models

import "time"

// Report is the human-oriented rendering of the latest classification:
// headline stage, trend context, warnings, recommended actions, and the
// full plain-text version.
type Report struct {
	Symbol      string    `json:"symbol"`
	GeneratedAt time.Time `json:"generated_at"`
	Stage       Stage     `json:"stage"`
	StageName   string    `json:"stage_name"`
	Risk        RiskTier  `json:"risk"`
	Confidence  float64   `json:"confidence"`
	Change5Pct  *float64  `json:"change_5bar_pct"`
	Change20Pct *float64  `json:"change_20bar_pct"`
	MATrend     string    `json:"ma_trend"`
	Warnings    []string  `json:"warnings,omitempty"`
	Actions     []string  `json:"actions"`
	Text        string    `json:"text"`
}
