package schema

import (
	"fmt"
	"math"
	"time"
)

// MinutesPerDay is the exclusive upper bound for change point offsets.
const MinutesPerDay = 1440

// DateFormat is the calendar-date representation used throughout.
const DateFormat = "2006-01-02"

// RoundHours rounds an hour value to two decimal places. Applied exactly once
// per value, at the point where internal accumulation becomes external output.
func RoundHours(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatHours renders an hour value as "7h30" for human-readable output.
func FormatHours(v float64) string {
	minutes := int(math.Round(v * 60))
	return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateFormat, date)
}
