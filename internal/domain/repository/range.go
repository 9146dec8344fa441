package repository

// Range is a lookback window for historical bars.
type Range string

const (
	Range1mo Range = "1mo"
	Range3mo Range = "3mo"
	Range6mo Range = "6mo"
	Range1y  Range = "1y"
	Range2y  Range = "2y"
)

// IsValidRange returns true if r is a supported lookback range.
func IsValidRange(r Range) bool {
	switch r {
	case Range1mo, Range3mo, Range6mo, Range1y, Range2y:
		return true
	default:
		return false
	}
}

// DefaultRange returns the default lookback range.
func DefaultRange() Range { return Range6mo }

// NormalizeRange converts a raw string to a valid range (or default).
func NormalizeRange(s string) Range {
	if s == "" {
		return DefaultRange()
	}
	r := Range(s)
	if IsValidRange(r) {
		return r
	}
	return DefaultRange()
}
