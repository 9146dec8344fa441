package indicators

import "math"

// Rolling-window transforms. All of them are NaN-aware with full-window
// semantics: out[i] is NaN until the window is completely filled, and stays
// NaN while the window contains any NaN input. All run in O(1) amortized
// per element: the mean keeps a running sum, min/max keep a monotonic deque.

var nan = math.NaN()

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = nan
	}
	return out
}

// rollingMean computes the simple moving average over a fixed window.
func rollingMean(xs []float64, window int) []float64 {
	out := nanSlice(len(xs))
	if window <= 0 || len(xs) < window {
		return out
	}
	sum := 0.0
	nans := 0
	for i, x := range xs {
		if math.IsNaN(x) {
			nans++
		} else {
			sum += x
		}
		if i >= window {
			old := xs[i-window]
			if math.IsNaN(old) {
				nans--
			} else {
				sum -= old
			}
		}
		if i >= window-1 && nans == 0 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// rollingMax computes the windowed maximum using a descending monotonic
// deque of indices.
func rollingMax(xs []float64, window int) []float64 {
	return rollingExtreme(xs, window, func(a, b float64) bool { return a >= b })
}

// rollingMin computes the windowed minimum.
func rollingMin(xs []float64, window int) []float64 {
	return rollingExtreme(xs, window, func(a, b float64) bool { return a <= b })
}

// rollingExtreme keeps a deque of candidate indices whose values are ordered
// by beats; the front is always the current window's extreme.
func rollingExtreme(xs []float64, window int, beats func(a, b float64) bool) []float64 {
	out := nanSlice(len(xs))
	if window <= 0 || len(xs) < window {
		return out
	}
	deque := make([]int, 0, window)
	nans := 0
	for i, x := range xs {
		if math.IsNaN(x) {
			nans++
		} else {
			for len(deque) > 0 && beats(x, xs[deque[len(deque)-1]]) {
				deque = deque[:len(deque)-1]
			}
			deque = append(deque, i)
		}
		if i >= window {
			if math.IsNaN(xs[i-window]) {
				nans--
			}
		}
		// drop candidates that slid out of the window
		for len(deque) > 0 && deque[0] <= i-window {
			deque = deque[1:]
		}
		if i >= window-1 && nans == 0 && len(deque) > 0 {
			out[i] = xs[deque[0]]
		}
	}
	return out
}

// pctChange computes the n-bar fractional return xs[i]/xs[i-n] - 1.
// NaN until n prior values exist or when the base value is zero or NaN.
func pctChange(xs []float64, n int) []float64 {
	out := nanSlice(len(xs))
	if n <= 0 {
		return out
	}
	for i := n; i < len(xs); i++ {
		base := xs[i-n]
		if base == 0 || math.IsNaN(base) || math.IsNaN(xs[i]) {
			continue
		}
		out[i] = xs[i]/base - 1
	}
	return out
}

// nanMean averages the defined values in xs, skipping NaN. Returns NaN when
// every value is undefined.
func nanMean(xs []float64) float64 {
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
		return nan
	}
	return sum / float64(n)
}
