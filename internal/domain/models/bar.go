package models

import "time"

// Bar is one time-indexed OHLCV sample. Bars are immutable once ingested
// and always ordered by strictly increasing timestamp.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// AuxPoint is one observation of the auxiliary volatility-index series.
// The auxiliary series may have gaps or a lower frequency than the bars;
// alignment forward-fills the last known value.
type AuxPoint struct {
	Timestamp time.Time
	Value     float64
}

// MarketData bundles everything the analysis pipeline needs for one symbol:
// the bar history plus the (possibly empty) volatility-index series covering
// the same window.
type MarketData struct {
	Symbol string
	Range  string
	Bars   []Bar
	Aux    []AuxPoint
}
