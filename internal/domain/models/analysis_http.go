package models

import "math"

// Requests for analysis HTTP endpoints. Defined in domain for consistency and reuse.

type AnalysisRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=16"`
	Range  string `query:"range" json:"range" default:"6mo" validate:"oneof=1mo 3mo 6mo 1y 2y"`
}

// The DTOs below exist because indicator values are NaN before warm-up and
// encoding/json rejects NaN. Undefined values are serialized as null.

type SnapshotDTO struct {
	StochRSIK      *float64 `json:"stoch_rsi_k"`
	StochRSID      *float64 `json:"stoch_rsi_d"`
	HLT            *float64 `json:"hlt"`
	RSI            *float64 `json:"rsi"`
	VolumeSpike    bool     `json:"volume_spike"`
	FearGreed      *float64 `json:"fear_greed"`
	VIX            *float64 `json:"vix"`
	SMA20          *float64 `json:"sma_20"`
	SMA50          *float64 `json:"sma_50"`
	WeeklyStochRSI *float64 `json:"weekly_stoch_rsi"`
}

type ClassificationDTO struct {
	Stage      Stage       `json:"stage"`
	StageName  string      `json:"stage_name"`
	Risk       RiskTier    `json:"risk"`
	Confidence float64     `json:"confidence"`
	Indicators SnapshotDTO `json:"indicators"`
	Warnings   []string    `json:"warnings,omitempty"`
}

type LabeledBarDTO struct {
	Timestamp  int64       `json:"timestamp"`
	Open       float64     `json:"open"`
	High       float64     `json:"high"`
	Low        float64     `json:"low"`
	Close      float64     `json:"close"`
	Volume     float64     `json:"volume"`
	Stage      Stage       `json:"stage,omitempty"`
	Confidence float64     `json:"confidence"`
	Indicators SnapshotDTO `json:"indicators"`
}

type AnalysisSummaryDTO struct {
	Symbol      string            `json:"symbol"`
	Range       string            `json:"range"`
	BarCount    int               `json:"bar_count"`
	Latest      ClassificationDTO `json:"latest"`
	StageCounts map[Stage]int     `json:"stage_counts"`
}

type LabeledSeriesDTO struct {
	Symbol string          `json:"symbol"`
	Range  string          `json:"range"`
	Bars   []LabeledBarDTO `json:"bars"`
}

// ToDTO converts a snapshot, mapping NaN fields to null.
func (s IndicatorSnapshot) ToDTO() SnapshotDTO {
	return SnapshotDTO{
		StochRSIK:      jsonFloat(s.StochRSIK),
		StochRSID:      jsonFloat(s.StochRSID),
		HLT:            jsonFloat(s.HLT),
		RSI:            jsonFloat(s.RSI),
		VolumeSpike:    s.VolumeSpike,
		FearGreed:      jsonFloat(s.FearGreed),
		VIX:            jsonFloat(s.VIX),
		SMA20:          jsonFloat(s.SMA20),
		SMA50:          jsonFloat(s.SMA50),
		WeeklyStochRSI: jsonFloat(s.WeeklyStochRSI),
	}
}

// ToDTO converts a classification result for transport.
func (r ClassificationResult) ToDTO() ClassificationDTO {
	info := r.Stage.Info()
	return ClassificationDTO{
		Stage:      r.Stage,
		StageName:  info.Name,
		Risk:       info.Risk,
		Confidence: r.Confidence,
		Indicators: r.Indicators.ToDTO(),
		Warnings:   r.Warnings,
	}
}

// SummaryDTO renders the series header plus the latest classification.
func (ls *LabeledSeries) SummaryDTO() AnalysisSummaryDTO {
	return AnalysisSummaryDTO{
		Symbol:      ls.Symbol,
		Range:       ls.Range,
		BarCount:    len(ls.Bars),
		Latest:      ls.Latest.ToDTO(),
		StageCounts: ls.StageCounts,
	}
}

// HistoryDTO renders every labeled bar.
func (ls *LabeledSeries) HistoryDTO() LabeledSeriesDTO {
	bars := make([]LabeledBarDTO, 0, len(ls.Bars))
	for _, b := range ls.Bars {
		bars = append(bars, LabeledBarDTO{
			Timestamp:  b.Timestamp.Unix(),
			Open:       b.Open,
			High:       b.High,
			Low:        b.Low,
			Close:      b.Close,
			Volume:     b.Volume,
			Stage:      b.Stage,
			Confidence: b.Confidence,
			Indicators: b.Indicators.ToDTO(),
		})
	}
	return LabeledSeriesDTO{Symbol: ls.Symbol, Range: ls.Range, Bars: bars}
}

// jsonFloat maps NaN/Inf to nil so the value encodes as JSON null.
func jsonFloat(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

