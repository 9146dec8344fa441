package stages

import (
	"math"

	"WaveStage/internal/domain/models"
	"WaveStage/internal/services/indicators"
)

// WarmupBars is how many leading bars stay unlabeled: below this there is
// not enough history for a meaningful verdict.
const WarmupBars = 50

// weeklyWindow is the K-value lookback approximating a weekly oscillator.
const weeklyWindow = 5

// Labeler replays the classifier over the historical series. Classification
// of bar i reads only bars [0, i]: every indicator value at i already
// depends on its trailing window alone, and the extra context (weekly mean,
// short returns) is computed strictly from the prefix. Mutating bars after
// i therefore can never change the label recorded at i.
type Labeler struct {
	warmup int
}

func NewLabeler(warmup int) *Labeler {
	if warmup <= 0 {
		warmup = WarmupBars
	}
	return &Labeler{warmup: warmup}
}

// Run labels every bar. Bars before the warm-up offset keep an empty stage
// and zero confidence.
func (l *Labeler) Run(bars []models.Bar, series *indicators.Series) []models.LabeledBar {
	out := make([]models.LabeledBar, len(bars))
	for i := range bars {
		lb := models.LabeledBar{
			Bar:        bars[i],
			Indicators: l.snapshotAt(bars, series, i),
		}
		if i >= l.warmup {
			res := Classify(l.inputAt(bars, series, i), lb.Indicators)
			lb.Stage = res.Stage
			lb.Confidence = res.Confidence
		}
		out[i] = lb
	}
	return out
}

// ClassifyAt returns the full classification for bar i, warnings included.
// Unlike Run it does not apply the warm-up cutoff: on short history the
// gates see NaN and the default stage comes back.
func (l *Labeler) ClassifyAt(bars []models.Bar, series *indicators.Series, i int) models.ClassificationResult {
	return Classify(l.inputAt(bars, series, i), l.snapshotAt(bars, series, i))
}

func (l *Labeler) snapshotAt(bars []models.Bar, series *indicators.Series, i int) models.IndicatorSnapshot {
	snap := series.Snapshot(i)
	snap.WeeklyStochRSI = l.weeklyStochK(series, i)
	return snap
}

func (l *Labeler) inputAt(bars []models.Bar, series *indicators.Series, i int) Input {
	return Input{
		StochK:       series.StochK[i],
		StochD:       series.StochD[i],
		HLT:          series.HLT[i],
		VolumeSpike:  series.VolumeSpike[i],
		FearGreed:    series.FearGreed[i],
		VIX:          series.VIX[i],
		WeeklyStochK: l.weeklyStochK(series, i),
		Ret3:         prefixReturn(bars, i, 3),
		Ret5:         prefixReturn(bars, i, 5),
		Close:        bars[i].Close,
		High:         bars[i].High,
	}
}

// weeklyStochK averages the last weeklyWindow K values, skipping NaN. With
// fewer than weeklyWindow bars of history the latest K is used as-is.
func (l *Labeler) weeklyStochK(series *indicators.Series, i int) float64 {
	if i < weeklyWindow-1 {
		return series.StochK[i]
	}
	return nanMeanOf(series.StochK[i-weeklyWindow+1 : i+1])
}

// prefixReturn is the n-bar fractional close-to-close return ending at i.
func prefixReturn(bars []models.Bar, i, n int) float64 {
	if i < n {
		return math.NaN()
	}
	base := bars[i-n].Close
	if base == 0 {
		return math.NaN()
	}
	return bars[i].Close/base - 1
}

func nanMeanOf(xs []float64) float64 {
	sum := 0.0
	n := 0
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		sum += x
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
