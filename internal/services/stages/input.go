package stages

import "math"

// Input is the point-in-time view a rule gate reads. Any field may be NaN
// when history is too short; a comparison involving NaN never fires a gate.
type Input struct {
	StochK      float64
	StochD      float64
	HLT         float64
	VolumeSpike bool
	FearGreed   float64
	VIX         float64

	// WeeklyStochK proxies the weekly oscillator: the NaN-skipping mean of
	// the last <=5 StochK values in the prefix.
	WeeklyStochK float64

	// Ret3/Ret5 are 3- and 5-bar fractional returns over the prefix.
	Ret3 float64
	Ret5 float64

	// Close and High belong to the bar being classified.
	Close float64
	High  float64
}

// NaN-safe comparisons: every gate goes through these so an undefined
// indicator simply keeps the rule from firing instead of blowing up.

func lt(a, b float64) bool  { return !math.IsNaN(a) && a < b }
func lte(a, b float64) bool { return !math.IsNaN(a) && a <= b }
func gt(a, b float64) bool  { return !math.IsNaN(a) && a > b }
func gte(a, b float64) bool { return !math.IsNaN(a) && a >= b }

func between(a, lo, hi float64) bool {
	return !math.IsNaN(a) && a > lo && a < hi
}

// less compares two indicator values, requiring both to be defined.
func less(a, b float64) bool {
	return !math.IsNaN(a) && !math.IsNaN(b) && a < b
}
