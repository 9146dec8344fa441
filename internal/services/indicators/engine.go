package indicators

import (
	"math"

	"WaveStage/internal/domain/models"
)

// Params holds the window sizes for every derived series. Zero values fall
// back to the defaults used by the original study.
type Params struct {
	RSIPeriod            int
	StochPeriod          int
	SmoothK              int
	SmoothD              int
	HLTPeriod            int
	VolumePeriod         int
	VolumeSpikeThreshold float64
	MomentumBars         int
	SMAFast              int
	SMASlow              int
}

// DefaultParams returns the canonical parameter set.
func DefaultParams() Params {
	return Params{
		RSIPeriod:            14,
		StochPeriod:          14,
		SmoothK:              3,
		SmoothD:              3,
		HLTPeriod:            20,
		VolumePeriod:         20,
		VolumeSpikeThreshold: 2.0,
		MomentumBars:         20,
		SMAFast:              20,
		SMASlow:              50,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.RSIPeriod <= 0 {
		p.RSIPeriod = d.RSIPeriod
	}
	if p.StochPeriod <= 0 {
		p.StochPeriod = d.StochPeriod
	}
	if p.SmoothK <= 0 {
		p.SmoothK = d.SmoothK
	}
	if p.SmoothD <= 0 {
		p.SmoothD = d.SmoothD
	}
	if p.HLTPeriod <= 0 {
		p.HLTPeriod = d.HLTPeriod
	}
	if p.VolumePeriod <= 0 {
		p.VolumePeriod = d.VolumePeriod
	}
	if p.VolumeSpikeThreshold <= 0 {
		p.VolumeSpikeThreshold = d.VolumeSpikeThreshold
	}
	if p.MomentumBars <= 0 {
		p.MomentumBars = d.MomentumBars
	}
	if p.SMAFast <= 0 {
		p.SMAFast = d.SMAFast
	}
	if p.SMASlow <= 0 {
		p.SMASlow = d.SMASlow
	}
	return p
}

// Series holds every derived series, index-aligned to the input bars.
// Undefined values are NaN; the engine never errors on short input.
type Series struct {
	RSI         []float64
	StochK      []float64
	StochD      []float64
	HLT         []float64
	VolumeSpike []bool
	FearGreed   []float64
	VIX         []float64
	SMA20       []float64
	SMA50       []float64
}

// Snapshot assembles the per-bar view at index i. WeeklyStochRSI is a
// prefix-derived statistic and is filled in by the caller.
func (s *Series) Snapshot(i int) models.IndicatorSnapshot {
	return models.IndicatorSnapshot{
		StochRSIK:      s.StochK[i],
		StochRSID:      s.StochD[i],
		HLT:            s.HLT[i],
		RSI:            s.RSI[i],
		VolumeSpike:    s.VolumeSpike[i],
		FearGreed:      s.FearGreed[i],
		VIX:            s.VIX[i],
		SMA20:          s.SMA20[i],
		SMA50:          s.SMA50[i],
		WeeklyStochRSI: nan,
	}
}

// Engine computes all derived series from raw bars.
type Engine struct {
	p Params
}

func NewEngine(p Params) *Engine {
	return &Engine{p: p.withDefaults()}
}

// Compute derives every series for the bar sequence. vix is the
// forward-filled volatility-index column aligned to bars, or nil when no
// auxiliary series is available. Every output value at index i depends only
// on bars [0, i], which is what makes the historical replay lookahead-free.
func (e *Engine) Compute(bars []models.Bar, vix []float64) *Series {
	n := len(bars)
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
		volumes[i] = b.Volume
	}

	s := &Series{}
	s.RSI = e.rsi(closes)
	s.StochK, s.StochD = e.stochRSI(s.RSI)
	s.HLT = e.hlt(highs, lows, closes)

	volMean := rollingMean(volumes, e.p.VolumePeriod)
	s.VolumeSpike = e.volumeSpikes(volumes, volMean)
	s.FearGreed = e.fearGreed(closes, volumes, volMean, vix)

	if vix != nil {
		s.VIX = vix
	} else {
		s.VIX = nanSlice(n)
	}
	s.SMA20 = rollingMean(closes, e.p.SMAFast)
	s.SMA50 = rollingMean(closes, e.p.SMASlow)
	return s
}

// rsi computes the Wilder-flavored RSI with simple rolling means. A window
// of pure gains saturates to 100; a window with no movement at all is
// undefined, not an error.
func (e *Engine) rsi(closes []float64) []float64 {
	n := len(closes)
	gains := nanSlice(n)
	losses := nanSlice(n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		gains[i] = math.Max(delta, 0)
		losses[i] = math.Max(-delta, 0)
	}

	meanGain := rollingMean(gains, e.p.RSIPeriod)
	meanLoss := rollingMean(losses, e.p.RSIPeriod)

	out := nanSlice(n)
	for i := 0; i < n; i++ {
		g, l := meanGain[i], meanLoss[i]
		if math.IsNaN(g) || math.IsNaN(l) {
			continue
		}
		if l == 0 {
			if g > 0 {
				out[i] = 100
			}
			continue
		}
		rs := g / l
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// stochRSI applies a stochastic-oscillator transform to the RSI series and
// smooths it twice. A window where the RSI never moved yields NaN.
func (e *Engine) stochRSI(rsi []float64) (k, d []float64) {
	lo := rollingMin(rsi, e.p.StochPeriod)
	hi := rollingMax(rsi, e.p.StochPeriod)

	raw := nanSlice(len(rsi))
	for i := range rsi {
		if math.IsNaN(rsi[i]) || math.IsNaN(lo[i]) || math.IsNaN(hi[i]) || hi[i] == lo[i] {
			continue
		}
		raw[i] = (rsi[i] - lo[i]) / (hi[i] - lo[i]) * 100
	}

	k = rollingMean(raw, e.p.SmoothK)
	d = rollingMean(k, e.p.SmoothD)
	return k, d
}

// hlt is the close's position inside the recent trading range, 0..100.
func (e *Engine) hlt(highs, lows, closes []float64) []float64 {
	hh := rollingMax(highs, e.p.HLTPeriod)
	ll := rollingMin(lows, e.p.HLTPeriod)

	out := nanSlice(len(closes))
	for i := range closes {
		if math.IsNaN(hh[i]) || math.IsNaN(ll[i]) || hh[i] == ll[i] {
			continue
		}
		out[i] = (closes[i] - ll[i]) / (hh[i] - ll[i]) * 100
	}
	return out
}

// volumeSpikes flags bars whose volume exceeds threshold times the rolling
// mean. False while the mean is still undefined.
func (e *Engine) volumeSpikes(volumes, volMean []float64) []bool {
	out := make([]bool, len(volumes))
	for i := range volumes {
		if math.IsNaN(volMean[i]) {
			continue
		}
		out[i] = volumes[i] > volMean[i]*e.p.VolumeSpikeThreshold
	}
	return out
}
