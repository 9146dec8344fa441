package indicators

import "math"

// Fear-greed composite weights: momentum, volatility, volume.
const (
	fgMomentumWeight = 0.4
	fgVolWeight      = 0.4
	fgVolumeWeight   = 0.2
)

// fearGreed blends three sub-scores into one 0..100 sentiment value:
//
//   - momentum: the MomentumBars percent return mapped [-10%,+10%] -> [0,100];
//     an undefined return counts as zero change (score 50)
//   - volatility: the aux index mapped [10,40] -> [100,0]; constant 50 when
//     no auxiliary series exists; NaN while the fill has not started yet
//   - volume: (volume/mean - 0.5) * 100
//
// The sub-scores are deliberately not clipped; only the composite is,
// so one extreme component can still offset another before the clamp.
func (e *Engine) fearGreed(closes, volumes, volMean, vix []float64) []float64 {
	momentum := pctChange(closes, e.p.MomentumBars)

	out := nanSlice(len(closes))
	for i := range closes {
		m := momentum[i]
		if math.IsNaN(m) {
			m = 0
		}
		momentumScore := (m + 0.10) / 0.20 * 100

		volScore := 50.0
		if vix != nil {
			if math.IsNaN(vix[i]) {
				continue
			}
			volScore = 100 - (vix[i]-10)/30*100
		}

		if math.IsNaN(volMean[i]) || volMean[i] == 0 {
			continue
		}
		volumeScore := (volumes[i]/volMean[i] - 0.5) / 1.0 * 100

		fg := fgMomentumWeight*momentumScore + fgVolWeight*volScore + fgVolumeWeight*volumeScore
		out[i] = clip(fg, 0, 100)
	}
	return out
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
