package models

// IndicatorSnapshot is the point-in-time view of every derived series for
// one bar. Values are NaN until enough history exists; consumers must gate
// on definedness before comparing.
type IndicatorSnapshot struct {
	StochRSIK      float64
	StochRSID      float64
	HLT            float64
	RSI            float64
	VolumeSpike    bool
	FearGreed      float64
	VIX            float64
	SMA20          float64
	SMA50          float64
	WeeklyStochRSI float64
}

// ClassificationResult is the classifier's verdict for one bar. Stage is
// never empty: a deterministic default applies when no rule fires. Not
// mutated after creation.
type ClassificationResult struct {
	Stage      Stage
	Confidence float64
	Indicators IndicatorSnapshot
	Warnings   []string
}

// LabeledBar is one bar of the input series augmented with its indicator
// snapshot and the point-in-time-correct stage label. Stage stays empty and
// Confidence zero for bars inside the warm-up window.
type LabeledBar struct {
	Bar
	Indicators IndicatorSnapshot
	Stage      Stage
	Confidence float64
}

// LabeledSeries is the full output of one analysis run: every bar labeled,
// the latest bar's full classification, and per-stage occupancy counts.
// Read-only after construction.
type LabeledSeries struct {
	Symbol      string
	Range       string
	Bars        []LabeledBar
	Latest      ClassificationResult
	StageCounts map[Stage]int
}
