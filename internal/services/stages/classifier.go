package stages

import "WaveStage/internal/domain/models"

// Fallback when no rule fires: the classifier is total and always answers.
const (
	DefaultStage      = models.StageC
	DefaultConfidence = 0.5
)

// Warnings attached to classification results.
const (
	WarnUnclear   = "could not determine a clear stage; showing the default stage"
	WarnHighRisk  = "high price zone: trend reversal risk"
	WarnRebound   = "possible selling climax: consider preparing for a rebound"
	WarnTrendZone = "trend underway: historically the most profitable zone"
)

// Classify evaluates the rule table against one point-in-time input and
// returns exactly one result. snap is echoed back so callers downstream see
// the values the verdict was based on.
func Classify(in Input, snap models.IndicatorSnapshot) models.ClassificationResult {
	res := models.ClassificationResult{Indicators: snap}

	var best models.Stage
	bestConf := 0.0
	for _, r := range ruleTable {
		if !r.gate(in) {
			continue
		}
		conf := r.base
		if r.bonus != nil && r.bonus(in) {
			conf += r.extra
		}
		if conf > bestConf {
			best = r.stage
			bestConf = conf
		}
	}

	if best == "" {
		res.Stage = DefaultStage
		res.Confidence = DefaultConfidence
		res.Warnings = append(res.Warnings, WarnUnclear)
	} else {
		res.Stage = best
		res.Confidence = clamp01(bestConf)
	}

	switch res.Stage {
	case models.StageD, models.StageDBC:
		res.Warnings = append(res.Warnings, WarnHighRisk)
	case models.StageGSC:
		res.Warnings = append(res.Warnings, WarnRebound)
	case models.StageB:
		res.Warnings = append(res.Warnings, WarnTrendZone)
	}
	return res
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
