package core

import (
	"sort"

	"github.com/roadworks/tachoscan/schema"
)

// FoldIntervals adds interval durations into the per-date summary map. The
// fold is additive: when the same calendar date carries records from both card
// generations their durations are summed per type, never reconciled. The
// contract assumes generations describe complementary, non-overlapping time.
func FoldIntervals(byDate map[string]*schema.DailySummary, intervals []schema.ActivityInterval) {
	for _, iv := range intervals {
		day := byDate[iv.Date]
		if day == nil {
			day = &schema.DailySummary{Date: iv.Date}
			byDate[iv.Date] = day
		}
		hours := iv.DurationHours()
		switch iv.Activity {
		case schema.ActivityDrive:
			day.DrivingHours += hours
		case schema.ActivityWork:
			day.OtherWorkHours += hours
		case schema.ActivityAvailability:
			day.AvailabilityHours += hours
		case schema.ActivityRest:
			day.RestHours += hours
		}
	}
}

// FinalizeSummaries recomputes total work as driving + other work, applies the
// single two-decimal rounding pass, and flattens the map into a list sorted
// most-recent date first. Total work is recomputed rather than accumulated
// independently, so it cannot drift from its components.
func FinalizeSummaries(byDate map[string]*schema.DailySummary) []schema.DailySummary {
	days := make([]schema.DailySummary, 0, len(byDate))
	for _, day := range byDate {
		d := *day
		d.TotalWorkHours = d.DrivingHours + d.OtherWorkHours
		d.DrivingHours = schema.RoundHours(d.DrivingHours)
		d.OtherWorkHours = schema.RoundHours(d.OtherWorkHours)
		d.AvailabilityHours = schema.RoundHours(d.AvailabilityHours)
		d.RestHours = schema.RoundHours(d.RestHours)
		d.TotalWorkHours = schema.RoundHours(d.TotalWorkHours)
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})
	return days
}
