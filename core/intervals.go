// Package core has core logic for interval reconstruction, daily aggregation
// and driving/rest compliance analysis.
package core

import (
	"slices"

	"github.com/roadworks/tachoscan/schema"
)

// ReconstructDay converts one day's change points into the ordered sequence of
// typed intervals for that day. Each interval runs from its change point to
// the next one, or to midnight (minute 1440) for the last point of the day.
//
// A day with no change points yields no intervals. If the first change point
// does not sit at minute 0, the time before it stays uncovered: there is no
// activity type to assign to it, so none is invented.
func ReconstructDay(rec schema.DailyChangeRecord) ([]schema.ActivityInterval, error) {
	if len(rec.ChangePoints) == 0 {
		return nil, nil
	}

	// Defensive sort; input is expected pre-sorted but the card format does
	// not guarantee it.
	pts := slices.Clone(rec.ChangePoints)
	slices.SortStableFunc(pts, func(a, b schema.ActivityChangePoint) int {
		return a.OffsetMinutes - b.OffsetMinutes
	})

	intervals := make([]schema.ActivityInterval, 0, len(pts))
	for i, pt := range pts {
		if pt.OffsetMinutes < 0 || pt.OffsetMinutes >= schema.MinutesPerDay {
			return nil, &MalformedRecordError{Date: rec.Date, OffsetMinutes: pt.OffsetMinutes}
		}
		activity, ok := schema.ActivityTypeFromCode(pt.TypeCode)
		if !ok {
			return nil, &UnknownActivityTypeError{Date: rec.Date, Code: pt.TypeCode}
		}

		end := schema.MinutesPerDay
		if i+1 < len(pts) {
			end = pts[i+1].OffsetMinutes
		}
		// Duplicate offsets produce zero-length intervals; they carry no
		// duration and are dropped to keep EndMinute > StartMinute.
		if end <= pt.OffsetMinutes {
			continue
		}
		intervals = append(intervals, schema.ActivityInterval{
			Date:        rec.Date,
			StartMinute: pt.OffsetMinutes,
			EndMinute:   end,
			Activity:    activity,
		})
	}
	return intervals, nil
}

// SortIntervals orders an interval stream chronologically: by calendar date,
// then by start minute within the day.
func SortIntervals(intervals []schema.ActivityInterval) {
	slices.SortStableFunc(intervals, func(a, b schema.ActivityInterval) int {
		if a.Date != b.Date {
			if a.Date < b.Date {
				return -1
			}
			return 1
		}
		return a.StartMinute - b.StartMinute
	})
}
