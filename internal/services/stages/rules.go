package stages

import "WaveStage/internal/domain/models"

// rule is one classifier entry: a gate, its base confidence, and an
// optional bonus gate adding extra confidence when it also holds.
type rule struct {
	stage models.Stage
	base  float64
	gate  func(Input) bool
	bonus func(Input) bool
	extra float64
}

// ruleTable is evaluated in this exact order. Rules are not mutually
// exclusive; the highest resulting confidence wins and ties resolve to the
// earliest entry ("first strictly greater wins" while scanning).
var ruleTable = []rule{
	{
		// Early advance: weekly oscillator washed out, volume quiet.
		stage: models.StageA,
		base:  0.8,
		gate: func(in Input) bool {
			return lt(in.WeeklyStochK, 30) && !in.VolumeSpike
		},
		bonus: func(in Input) bool { return lt(in.HLT, 30) },
		extra: 0.2,
	},
	{
		// Accelerating advance: K above D in the upper-middle of the range.
		stage: models.StageB,
		base:  0.7,
		gate: func(in Input) bool {
			return gt(in.StochK, 50) && less(in.StochD, in.StochK) && between(in.HLT, 50, 80)
		},
		bonus: func(in Input) bool { return less(in.WeeklyStochK, in.StochK) },
		extra: 0.3,
	},
	{
		// Correction: K rolling under D mid-range.
		stage: models.StageC,
		base:  0.7,
		gate: func(in Input) bool {
			return less(in.StochK, in.StochD) && between(in.HLT, 30, 70)
		},
		bonus: func(in Input) bool { return !in.VolumeSpike },
		extra: 0.2,
	},
	{
		// Overheated advance: euphoric sentiment on heavy volume.
		stage: models.StageD,
		base:  0.8,
		gate: func(in Input) bool {
			return gt(in.StochK, 80) && gt(in.FearGreed, 70) && lt(in.VIX, 15) && in.VolumeSpike
		},
	},
	{
		// Buying climax: extreme greed, spike, oscillator pinned.
		stage: models.StageDBC,
		base:  0.9,
		gate: func(in Input) bool {
			return gte(in.FearGreed, 85) && in.VolumeSpike && gt(in.StochK, 90)
		},
		bonus: func(in Input) bool { return lt(in.Close, in.High*0.98) },
		extra: 0.1,
	},
	{
		// Corrective wave A: momentum cracking while sentiment cools.
		stage: models.StageE,
		base:  0.7,
		gate: func(in Input) bool {
			return lt(in.StochK, 50) && less(in.StochK, in.StochD) && lt(in.FearGreed, 50)
		},
		bonus: func(in Input) bool { return lt(in.Ret5, -0.05) },
		extra: 0.3,
	},
	{
		// Rebound wave B: neutral sentiment, quiet tape, mid oscillator.
		stage: models.StageF,
		base:  0.6,
		gate: func(in Input) bool {
			return between(in.FearGreed, 40, 60) && !in.VolumeSpike && between(in.StochK, 30, 70)
		},
		bonus: func(in Input) bool { return gt(in.Ret3, 0.03) },
		extra: 0.2,
	},
	{
		// Markdown wave C: fear, weak oscillator, elevated volatility.
		stage: models.StageG,
		base:  0.8,
		gate: func(in Input) bool {
			return lt(in.FearGreed, 30) && lt(in.StochK, 30) && gt(in.VIX, 20)
		},
	},
	{
		// Selling climax: capitulation extremes.
		stage: models.StageGSC,
		base:  0.9,
		gate: func(in Input) bool {
			return lte(in.FearGreed, 10) && gt(in.VIX, 30) && lt(in.StochK, 20)
		},
		bonus: func(in Input) bool { return in.VolumeSpike },
		extra: 0.1,
	},
}
