package stages

import (
	"math"
	"testing"

	"WaveStage/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nanInput() Input {
	n := math.NaN()
	return Input{
		StochK: n, StochD: n, HLT: n, FearGreed: n, VIX: n,
		WeeklyStochK: n, Ret3: n, Ret5: n, Close: n, High: n,
	}
}

func TestClassifyEarlyAdvanceWithBonus(t *testing.T) {
	in := nanInput()
	in.WeeklyStochK = 20
	in.HLT = 25
	in.VolumeSpike = false

	res := Classify(in, models.IndicatorSnapshot{})

	require.Equal(t, models.StageA, res.Stage)
	assert.InDelta(t, 1.0, res.Confidence, 1e-12)
	assert.Empty(t, res.Warnings)
}

func TestClassifyDefaultOnNoSignal(t *testing.T) {
	res := Classify(nanInput(), models.IndicatorSnapshot{})

	require.Equal(t, DefaultStage, res.Stage)
	assert.InDelta(t, DefaultConfidence, res.Confidence, 1e-12)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarnUnclear, res.Warnings[0])
}

func TestClassifyBuyingClimaxClampsConfidence(t *testing.T) {
	in := nanInput()
	in.FearGreed = 90
	in.VolumeSpike = true
	in.StochK = 95
	in.Close = 90
	in.High = 100 // upper wick: bonus fires, 0.9+0.1 stays clamped at 1

	res := Classify(in, models.IndicatorSnapshot{})

	require.Equal(t, models.StageDBC, res.Stage)
	assert.InDelta(t, 1.0, res.Confidence, 1e-12)
	assert.Contains(t, res.Warnings, WarnHighRisk)
}

func TestClassifyTieBreaksToEarlierRule(t *testing.T) {
	// Correction and corrective-wave gates both score 0.7 here; the
	// correction entry comes first so it must win.
	in := nanInput()
	in.StochK = 40
	in.StochD = 45
	in.HLT = 50
	in.FearGreed = 45
	in.VolumeSpike = true // suppresses the correction bonus

	res := Classify(in, models.IndicatorSnapshot{})

	require.Equal(t, models.StageC, res.Stage)
	assert.InDelta(t, 0.7, res.Confidence, 1e-12)
}

func TestClassifyHigherConfidenceBeatsEarlierRule(t *testing.T) {
	// Same setup without the spike: the correction bonus and the
	// corrective-wave drawdown bonus both apply; the later rule ends up
	// higher (1.0 vs 0.9) and takes it.
	in := nanInput()
	in.StochK = 40
	in.StochD = 45
	in.HLT = 50
	in.FearGreed = 45
	in.Ret5 = -0.08
	in.VolumeSpike = false

	res := Classify(in, models.IndicatorSnapshot{})

	require.Equal(t, models.StageE, res.Stage)
	assert.InDelta(t, 1.0, res.Confidence, 1e-12)
}

func TestClassifyNaNGatesNeverFire(t *testing.T) {
	in := nanInput()
	in.FearGreed = 5
	in.VIX = 35
	// StochK stays NaN: both markdown gates need it defined.

	res := Classify(in, models.IndicatorSnapshot{})
	require.Equal(t, DefaultStage, res.Stage)
}

func TestClassifySellingClimax(t *testing.T) {
	in := nanInput()
	in.FearGreed = 8
	in.VIX = 35
	in.StochK = 15
	in.VolumeSpike = true

	res := Classify(in, models.IndicatorSnapshot{})

	require.Equal(t, models.StageGSC, res.Stage)
	assert.InDelta(t, 1.0, res.Confidence, 1e-12)
	assert.Contains(t, res.Warnings, WarnRebound)
}

func TestClassifyTrendWarning(t *testing.T) {
	in := nanInput()
	in.StochK = 60
	in.StochD = 55
	in.HLT = 60
	in.WeeklyStochK = 50

	res := Classify(in, models.IndicatorSnapshot{})

	require.Equal(t, models.StageB, res.Stage)
	assert.InDelta(t, 1.0, res.Confidence, 1e-12)
	assert.Contains(t, res.Warnings, WarnTrendZone)
}

func TestClassifyOverheatedAdvance(t *testing.T) {
	in := nanInput()
	in.StochK = 85
	in.FearGreed = 75
	in.VIX = 12
	in.VolumeSpike = true

	res := Classify(in, models.IndicatorSnapshot{})

	require.Equal(t, models.StageD, res.Stage)
	assert.InDelta(t, 0.8, res.Confidence, 1e-12)
	assert.Contains(t, res.Warnings, WarnHighRisk)
}

func TestClassifyNeutralDrift(t *testing.T) {
	in := nanInput()
	in.FearGreed = 50
	in.StochK = 50
	in.StochD = 40 // K above D so the correction gate stays quiet
	in.HLT = 85    // outside the advance band
	in.Ret3 = 0.05
	in.VolumeSpike = false

	res := Classify(in, models.IndicatorSnapshot{})

	require.Equal(t, models.StageF, res.Stage)
	assert.InDelta(t, 0.8, res.Confidence, 1e-12)
}
