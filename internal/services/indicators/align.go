package indicators

import "WaveStage/internal/domain/models"

// AlignAux forward-fills the auxiliary volatility series onto the bar
// timestamps: each bar gets the last aux value observed at or before its
// timestamp, NaN before the first observation. Returns nil when aux is
// empty so callers can distinguish "no series" from "series with gaps".
// aux must be sorted by timestamp, like the bars themselves.
func AlignAux(bars []models.Bar, aux []models.AuxPoint) []float64 {
	if len(aux) == 0 {
		return nil
	}
	out := nanSlice(len(bars))
	j := 0
	last := nan
	for i, b := range bars {
		for j < len(aux) && !aux[j].Timestamp.After(b.Timestamp) {
			last = aux[j].Value
			j++
		}
		out[i] = last
	}
	return out
}
