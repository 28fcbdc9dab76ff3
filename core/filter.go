package core

import "github.com/roadworks/tachoscan/schema"

// FilterAnalysis narrows an analysis to the [start, end] date range. Empty
// bounds are open. Dates compare as YYYY-MM-DD strings, which orders the same
// as calendar time. Infractions without a date describe the card as a whole
// and are always kept. The input analysis is not modified.
func FilterAnalysis(analysis *schema.CardAnalysis, start, end string) *schema.CardAnalysis {
	if start == "" && end == "" {
		return analysis
	}

	inRange := func(date string) bool {
		if start != "" && date < start {
			return false
		}
		if end != "" && date > end {
			return false
		}
		return true
	}

	out := &schema.CardAnalysis{
		Driver:      analysis.Driver,
		Days:        make([]schema.DailySummary, 0, len(analysis.Days)),
		Infractions: make([]schema.Infraction, 0, len(analysis.Infractions)),
	}
	for _, day := range analysis.Days {
		if inRange(day.Date) {
			out.Days = append(out.Days, day)
		}
	}
	for _, inf := range analysis.Infractions {
		if inf.Date == "" || inRange(inf.Date) {
			out.Infractions = append(out.Infractions, inf)
		}
	}
	return out
}
