package models

// ChartData is the render-ready payload an external chart consumer needs to
// draw the four analysis panels: price with stage-colored bands, the two
// stochastic-RSI lines, fear-greed against the volatility index, and volume
// with spike highlighting. Undefined values encode as null.
type ChartData struct {
	Symbol     string      `json:"symbol"`
	Range      string      `json:"range"`
	Timestamps []int64     `json:"timestamps"`
	Price      PricePanel  `json:"price"`
	StochRSI   StochPanel  `json:"stoch_rsi"`
	Sentiment  SentiPanel  `json:"sentiment"`
	Volume     VolumePanel `json:"volume"`
}

// StageBand is one contiguous run of identically-staged bars, expressed as
// half-open index positions into Timestamps.
type StageBand struct {
	FromIndex int    `json:"from_index"`
	ToIndex   int    `json:"to_index"`
	Stage     Stage  `json:"stage"`
	Color     string `json:"color"`
}

type PricePanel struct {
	Close []float64   `json:"close"`
	SMA20 []*float64  `json:"sma_20"`
	SMA50 []*float64  `json:"sma_50"`
	Bands []StageBand `json:"bands"`
}

type StochPanel struct {
	K          []*float64 `json:"k"`
	D          []*float64 `json:"d"`
	Overbought float64    `json:"overbought"`
	Oversold   float64    `json:"oversold"`
}

type SentiPanel struct {
	FearGreed []*float64 `json:"fear_greed"`
	VIX       []*float64 `json:"vix"`
}

type VolumePanel struct {
	Volume []float64 `json:"volume"`
	Spike  []bool    `json:"spike"`
}

// NullableFloat maps NaN/Inf to nil so the value encodes as JSON null.
func NullableFloat(f float64) *float64 { return jsonFloat(f) }

// NullableFloats maps a series to pointers with NaN/Inf as nil, so gaps
// before warm-up encode as JSON null.
func NullableFloats(xs []float64) []*float64 {
	out := make([]*float64, len(xs))
	for i, x := range xs {
		out[i] = jsonFloat(x)
	}
	return out
}
