package stages

import (
	"math"
	"testing"
	"time"

	"WaveStage/internal/domain/models"
	"WaveStage/internal/services/indicators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticBars(n int) []models.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, n)
	v := 100.0
	for i := range bars {
		v += math.Sin(float64(i)*0.7)*2 + math.Cos(float64(i)*0.23)
		vol := 100 + 50*math.Abs(math.Sin(float64(i)*1.3))
		if i%37 == 0 {
			vol *= 4
		}
		bars[i] = models.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      v - 0.5,
			High:      v + 1,
			Low:       v - 1,
			Close:     v,
			Volume:    vol,
		}
	}
	return bars
}

func TestLabelerWarmupWindow(t *testing.T) {
	bars := syntheticBars(80)
	series := indicators.NewEngine(indicators.Params{}).Compute(bars, nil)

	labeled := NewLabeler(0).Run(bars, series)
	require.Len(t, labeled, 80)

	for i := 0; i < WarmupBars; i++ {
		assert.Equal(t, models.Stage(""), labeled[i].Stage, "index %d", i)
		assert.Zero(t, labeled[i].Confidence, "index %d", i)
	}
	for i := WarmupBars; i < len(labeled); i++ {
		require.True(t, labeled[i].Stage.Valid(), "index %d got %q", i, labeled[i].Stage)
		assert.Greater(t, labeled[i].Confidence, 0.0, "index %d", i)
		assert.LessOrEqual(t, labeled[i].Confidence, 1.0, "index %d", i)
	}
}

func TestLabelerCustomWarmup(t *testing.T) {
	bars := syntheticBars(80)
	series := indicators.NewEngine(indicators.Params{}).Compute(bars, nil)

	labeled := NewLabeler(60).Run(bars, series)
	assert.Equal(t, models.Stage(""), labeled[59].Stage)
	assert.True(t, labeled[60].Stage.Valid())
}

func TestLabelerNoLookahead(t *testing.T) {
	bars := syntheticBars(100)
	engine := indicators.NewEngine(indicators.Params{})
	labeler := NewLabeler(0)

	base := labeler.Run(bars, engine.Compute(bars, nil))

	// Rewrite the tail: labels before the first touched bar must not move.
	mutated := make([]models.Bar, len(bars))
	copy(mutated, bars)
	for i := 90; i < len(mutated); i++ {
		mutated[i].Close *= 1.5
		mutated[i].High *= 1.5
		mutated[i].Volume *= 10
	}
	relabeled := labeler.Run(mutated, engine.Compute(mutated, nil))

	for i := 0; i < 90; i++ {
		require.Equal(t, base[i].Stage, relabeled[i].Stage, "index %d", i)
		require.InDelta(t, base[i].Confidence, relabeled[i].Confidence, 1e-12, "index %d", i)
	}
}

func TestLabelerDeterministic(t *testing.T) {
	bars := syntheticBars(90)
	engine := indicators.NewEngine(indicators.Params{})
	labeler := NewLabeler(0)

	a := labeler.Run(bars, engine.Compute(bars, nil))
	b := labeler.Run(bars, engine.Compute(bars, nil))
	require.Equal(t, a, b)
}

func TestClassifyAtIgnoresWarmupCutoff(t *testing.T) {
	bars := syntheticBars(30)
	series := indicators.NewEngine(indicators.Params{}).Compute(bars, nil)

	// Short history: gates see NaN and the default verdict comes back,
	// but a verdict always comes back.
	res := NewLabeler(0).ClassifyAt(bars, series, len(bars)-1)
	require.True(t, res.Stage.Valid())
	require.Greater(t, res.Confidence, 0.0)
}

func TestWeeklyStochKPrefixMean(t *testing.T) {
	series := &indicators.Series{
		StochK: []float64{10, 20, 30, math.NaN(), 50, 60},
	}
	l := NewLabeler(0)

	// Short prefix: latest K as-is.
	assert.InDelta(t, 30.0, l.weeklyStochK(series, 2), 1e-12)
	// Full window skips the NaN: mean(20,30,50,60).
	assert.InDelta(t, 40.0, l.weeklyStochK(series, 5), 1e-12)
}

func TestPrefixReturn(t *testing.T) {
	bars := []models.Bar{
		{Close: 100}, {Close: 105}, {Close: 110}, {Close: 99},
	}
	assert.True(t, math.IsNaN(prefixReturn(bars, 2, 3)))
	assert.InDelta(t, -0.01, prefixReturn(bars, 3, 3), 1e-12)
}
