package indicators

import (
	"math"
	"testing"
	"time"

	"WaveStage/internal/domain/models"

	"github.com/stretchr/testify/require"
)

func barsFromCloses(closes []float64) []models.Bar {
	return barsFrom(closes, nil)
}

func barsFrom(closes, volumes []float64) []models.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		vol := 100.0
		if volumes != nil {
			vol = volumes[i]
		}
		bars[i] = models.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      c,
			High:      c * 1.01,
			Low:       c * 0.99,
			Close:     c,
			Volume:    vol,
		}
	}
	return bars
}

func TestRSISaturatesOnPureGains(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	s := NewEngine(Params{}).Compute(barsFromCloses(closes), nil)

	// First delta exists at index 1, so the 14-bar mean fills at index 14.
	require.True(t, math.IsNaN(s.RSI[13]))
	require.InDelta(t, 100.0, s.RSI[14], 1e-9)
	require.InDelta(t, 100.0, s.RSI[59], 1e-9)
}

func TestRSIFlatSeriesUndefined(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100
	}
	s := NewEngine(Params{}).Compute(barsFromCloses(closes), nil)

	for i, v := range s.RSI {
		require.True(t, math.IsNaN(v), "rsi index %d", i)
	}
	for i, v := range s.StochK {
		require.True(t, math.IsNaN(v), "stoch k index %d", i)
	}
}

func TestStochRSIWithinBounds(t *testing.T) {
	closes := make([]float64, 120)
	v := 100.0
	for i := range closes {
		v += math.Sin(float64(i)*0.9) * 2
		closes[i] = v
	}
	s := NewEngine(Params{}).Compute(barsFromCloses(closes), nil)

	defined := 0
	for i := range s.StochK {
		if math.IsNaN(s.StochK[i]) {
			continue
		}
		defined++
		require.GreaterOrEqual(t, s.StochK[i], 0.0, "k at %d", i)
		require.LessOrEqual(t, s.StochK[i], 100.0, "k at %d", i)
	}
	require.Greater(t, defined, 50)
}

func TestHLTPositionInRange(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i%10)
	}
	s := NewEngine(Params{}).Compute(barsFromCloses(closes), nil)

	require.True(t, math.IsNaN(s.HLT[18]))
	for i := 19; i < len(closes); i++ {
		require.False(t, math.IsNaN(s.HLT[i]), "hlt at %d", i)
		require.GreaterOrEqual(t, s.HLT[i], 0.0)
		require.LessOrEqual(t, s.HLT[i], 100.0)
	}
}

func TestVolumeSpikeThreshold(t *testing.T) {
	n := 25
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i := range closes {
		closes[i] = 100
		volumes[i] = 100
	}
	volumes[22] = 300 // 3x the window mean
	volumes[24] = 150 // elevated but under 2x

	s := NewEngine(Params{}).Compute(barsFrom(closes, volumes), nil)

	// Mean undefined until index 19: never a spike.
	for i := 0; i < 19; i++ {
		require.False(t, s.VolumeSpike[i], "index %d", i)
	}
	require.True(t, s.VolumeSpike[22])
	require.False(t, s.VolumeSpike[24])
}

func TestFearGreedClampAndWarmup(t *testing.T) {
	n := 25
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i := range closes {
		closes[i] = 100
		volumes[i] = 100
	}
	closes[20] = 150  // +50% over 20 bars
	volumes[20] = 300 // heavy tape

	s := NewEngine(Params{}).Compute(barsFrom(closes, volumes), nil)

	// Volume mean undefined -> composite undefined.
	require.True(t, math.IsNaN(s.FearGreed[18]))
	// Extreme momentum and volume blow past 100 before the clamp.
	require.InDelta(t, 100.0, s.FearGreed[20], 1e-9)
	for i := 19; i < n; i++ {
		if math.IsNaN(s.FearGreed[i]) {
			continue
		}
		require.GreaterOrEqual(t, s.FearGreed[i], 0.0)
		require.LessOrEqual(t, s.FearGreed[i], 100.0)
	}
}

func TestFearGreedUsesAuxVolatility(t *testing.T) {
	n := 25
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i := range closes {
		closes[i] = 100
		volumes[i] = 100
	}

	calm := make([]float64, n)
	stressed := make([]float64, n)
	for i := range calm {
		calm[i] = 12
		stressed[i] = 38
	}

	e := NewEngine(Params{})
	bars := barsFrom(closes, volumes)
	calmFG := e.Compute(bars, calm).FearGreed[20]
	stressedFG := e.Compute(bars, stressed).FearGreed[20]

	require.Greater(t, calmFG, stressedFG)
}

func TestFearGreedNaNAuxGap(t *testing.T) {
	n := 25
	closes := make([]float64, n)
	volumes := make([]float64, n)
	vix := make([]float64, n)
	for i := range closes {
		closes[i] = 100
		volumes[i] = 100
		vix[i] = 20
	}
	vix[21] = math.NaN()

	s := NewEngine(Params{}).Compute(barsFrom(closes, volumes), vix)

	require.False(t, math.IsNaN(s.FearGreed[20]))
	require.True(t, math.IsNaN(s.FearGreed[21]))
	require.False(t, math.IsNaN(s.FearGreed[22]))
}

func TestSMAWindows(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	s := NewEngine(Params{}).Compute(barsFromCloses(closes), nil)

	require.True(t, math.IsNaN(s.SMA20[18]))
	require.InDelta(t, 10.5, s.SMA20[19], 1e-12)
	require.True(t, math.IsNaN(s.SMA50[48]))
	require.InDelta(t, 25.5, s.SMA50[49], 1e-12)
}

func TestAlignAuxForwardFill(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, 4)
	for i := range bars {
		bars[i] = models.Bar{Timestamp: start.AddDate(0, 0, i), Close: 100}
	}

	aux := []models.AuxPoint{
		{Timestamp: start, Value: 15},
		{Timestamp: start.AddDate(0, 0, 2), Value: 22},
	}

	got := AlignAux(bars, aux)
	require.InDelta(t, 15.0, got[0], 1e-12)
	require.InDelta(t, 15.0, got[1], 1e-12)
	require.InDelta(t, 22.0, got[2], 1e-12)
	require.InDelta(t, 22.0, got[3], 1e-12)
}

func TestAlignAuxBeforeFirstObservation(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := []models.Bar{
		{Timestamp: start},
		{Timestamp: start.AddDate(0, 0, 1)},
	}
	aux := []models.AuxPoint{{Timestamp: start.AddDate(0, 0, 1), Value: 30}}

	got := AlignAux(bars, aux)
	require.True(t, math.IsNaN(got[0]))
	require.InDelta(t, 30.0, got[1], 1e-12)

	require.Nil(t, AlignAux(bars, nil))
}
