package util

import "time"

// TruncateToDay aligns a timestamp to its UTC session boundary.
func TruncateToDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
