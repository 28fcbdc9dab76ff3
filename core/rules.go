package core

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/roadworks/tachoscan/schema"
)

// Rule thresholds, fixed by EU regulation 561/2006. Not configurable.
const (
	maxContinuousDriveMin = 270 // 4h30 of drive without a qualifying break
	fullBreakMin          = 45
	splitBreakFirstMin    = 15
	splitBreakSecondMin   = 30

	maxDailyDriveHours     = 9.0
	extendedDriveHours     = 10.0
	maxExtendedDaysPerWeek = 2

	maxWeeklyDriveHours   = 56.0
	maxBiweeklyDriveHours = 90.0

	minDailyRestHours     = 11.0
	reducedDailyRestHours = 9.0
	maxReducedRestPerWeek = 3

	maxConsecutiveDriveDays = 6 // a 45h weekly rest is due before the 6th
)

// hourEpsilon absorbs float accumulation noise when comparing hour totals
// against thresholds expressed in whole or half hours.
const hourEpsilon = 1e-9

// dayTotals is the analyzer's full-precision per-day view of the interval
// stream. DailySummary rounds for output; rule checks must not.
type dayTotals struct {
	date    string
	day     time.Time
	driving float64
	work    float64
	avail   float64
	rest    float64
}

// AnalyzeCompliance evaluates the driving/rest rules against the merged,
// chronological interval stream of a whole card and returns every detected
// infraction, sorted by date then rule code. The analyzer is deterministic:
// the same stream always yields the same list in the same order.
func AnalyzeCompliance(intervals []schema.ActivityInterval) []schema.Infraction {
	stream := slices.Clone(intervals)
	SortIntervals(stream)

	days := buildDayTotals(stream)

	infractions := make([]schema.Infraction, 0)
	infractions = append(infractions, checkContinuousDriving(stream)...)
	infractions = append(infractions, checkDailyDriving(days)...)
	infractions = append(infractions, checkRollingDriving(days, 7, maxWeeklyDriveHours, schema.RuleWeeklyDriving)...)
	infractions = append(infractions, checkRollingDriving(days, 14, maxBiweeklyDriveHours, schema.RuleBiweeklyDriving)...)
	infractions = append(infractions, checkDailyRest(days)...)
	infractions = append(infractions, checkWeeklyRest(days)...)

	sortInfractions(infractions)
	return infractions
}

// newInfraction builds an infraction with its type and severity drawn from the
// fixed policy tables.
func newInfraction(code schema.RuleCode, date, description string) schema.Infraction {
	return schema.Infraction{
		Code:        code,
		Type:        schema.GetRuleType(code),
		Description: description,
		Date:        date,
		Severity:    schema.GetRuleSeverity(code),
	}
}

// sortInfractions orders infractions by date then rule code. Infractions
// without a date sort first.
func sortInfractions(infractions []schema.Infraction) {
	sort.SliceStable(infractions, func(i, j int) bool {
		if infractions[i].Date != infractions[j].Date {
			return infractions[i].Date < infractions[j].Date
		}
		return infractions[i].Code < infractions[j].Code
	})
}

// buildDayTotals folds the interval stream into an ascending per-day series at
// full precision. Days without any record simply do not appear.
func buildDayTotals(intervals []schema.ActivityInterval) []dayTotals {
	byDate := make(map[string]*dayTotals)
	for _, iv := range intervals {
		d := byDate[iv.Date]
		if d == nil {
			day, err := schema.ParseDate(iv.Date)
			if err != nil {
				continue
			}
			d = &dayTotals{date: iv.Date, day: day}
			byDate[iv.Date] = d
		}
		hours := iv.DurationHours()
		switch iv.Activity {
		case schema.ActivityDrive:
			d.driving += hours
		case schema.ActivityWork:
			d.work += hours
		case schema.ActivityAvailability:
			d.avail += hours
		case schema.ActivityRest:
			d.rest += hours
		}
	}
	days := make([]dayTotals, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].date < days[j].date })
	return days
}

// checkContinuousDriving scans the interval stream for driving episodes that
// exceed 4h30 without a qualifying break of 45 minutes, or a split break of
// 15 then 30 minutes. One infraction is emitted per episode, dated at the
// interval during which the cap was first exceeded.
func checkContinuousDriving(intervals []schema.ActivityInterval) []schema.Infraction {
	var out []schema.Infraction

	driveMin := 0
	splitFirst := false
	crossedDate := ""
	var prevEndAbs int64 = -1

	flush := func() {
		if crossedDate != "" {
			desc := fmt.Sprintf(
				"Conduite continue de %s sans pause valable (maximum 4h30, pause requise de 45 min ou fractionnée 15+30 min)",
				schema.FormatHours(float64(driveMin)/60.0))
			out = append(out, newInfraction(schema.RuleContinuousDriving, crossedDate, desc))
		}
		driveMin = 0
		splitFirst = false
		crossedDate = ""
	}

	for _, iv := range intervals {
		day, err := schema.ParseDate(iv.Date)
		if err != nil {
			flush()
			prevEndAbs = -1
			continue
		}
		absStart := day.Unix()/60 + int64(iv.StartMinute)

		// A hole in coverage (missing day, or a day whose first change point
		// is not at minute 0) ends the episode: the uncovered time has no
		// known activity and counts neither as drive nor as break.
		if prevEndAbs >= 0 && absStart != prevEndAbs {
			flush()
		}
		prevEndAbs = absStart + int64(iv.DurationMinutes())

		if iv.Activity == schema.ActivityDrive {
			driveMin += iv.DurationMinutes()
			if crossedDate == "" && driveMin > maxContinuousDriveMin {
				crossedDate = iv.Date
			}
			continue
		}

		pause := iv.DurationMinutes()
		switch {
		case pause >= fullBreakMin, splitFirst && pause >= splitBreakSecondMin:
			flush()
		case pause >= splitBreakFirstMin:
			splitFirst = true
		}
	}
	flush()
	return out
}

// checkDailyDriving flags every day whose drive total exceeds the 9h cap.
// Days within the 10h extension are flagged legere while the twice-per-week
// extension allowance lasts, moyenne once it is spent or the 10h bound is
// itself exceeded.
func checkDailyDriving(days []dayTotals) []schema.Infraction {
	var out []schema.Infraction
	extUsed := make(map[string]int)

	for _, d := range days {
		if d.driving <= maxDailyDriveHours+hourEpsilon {
			continue
		}
		desc := fmt.Sprintf(
			"Conduite journalière de %s le %s (maximum 9h, extension à 10h au plus 2 fois par semaine)",
			schema.FormatHours(d.driving), d.date)
		inf := newInfraction(schema.RuleDailyDriving, d.date, desc)
		if d.driving <= extendedDriveHours+hourEpsilon {
			week := isoWeekKey(d.day)
			extUsed[week]++
			if extUsed[week] <= maxExtendedDaysPerWeek {
				inf.Severity = schema.SeverityLegere
			}
		}
		out = append(out, inf)
	}
	return out
}

// checkRollingDriving enforces a cumulative drive cap over a trailing window
// of span calendar days. One infraction is emitted per violation episode, at
// the first window-end day that exceeds the cap.
func checkRollingDriving(days []dayTotals, span int, capHours float64, code schema.RuleCode) []schema.Infraction {
	var out []schema.Infraction
	inViolation := false

	for i, d := range days {
		cutoff := d.day.AddDate(0, 0, -(span - 1))
		sum := 0.0
		for j := i; j >= 0 && !days[j].day.Before(cutoff); j-- {
			sum += days[j].driving
		}
		if sum > capHours+hourEpsilon {
			if !inViolation {
				desc := fmt.Sprintf(
					"Conduite cumulée de %s sur %d jours glissants au %s (maximum %s)",
					schema.FormatHours(sum), span, d.date, schema.FormatHours(capHours))
				out = append(out, newInfraction(code, d.date, desc))
			}
			inViolation = true
		} else {
			inViolation = false
		}
	}
	return out
}

// checkDailyRest verifies the 11h daily rest floor, reducible to 9h at most
// three times per week. Inconsistent day summaries (negative totals, a driving
// day with no recorded rest at all) are reported as informational anomalies
// instead of aborting the run: a partial card read still yields a best-effort
// report.
func checkDailyRest(days []dayTotals) []schema.Infraction {
	var out []schema.Infraction
	reducedUsed := make(map[string]int)

	for _, d := range days {
		if d.driving < 0 || d.work < 0 || d.avail < 0 || d.rest < 0 {
			desc := fmt.Sprintf("Heures négatives détectées le %s: données de carte incohérentes", d.date)
			out = append(out, newInfraction(schema.RuleDataAnomaly, d.date, desc))
			continue
		}
		if d.driving <= hourEpsilon && d.work <= hourEpsilon {
			// Day without work or drive; no rest requirement applies.
			continue
		}
		if d.driving > hourEpsilon && d.rest <= hourEpsilon {
			desc := fmt.Sprintf("Journée du %s avec conduite mais aucun repos enregistré", d.date)
			out = append(out, newInfraction(schema.RuleDataAnomaly, d.date, desc))
			continue
		}
		switch {
		case d.rest < reducedDailyRestHours-hourEpsilon:
			desc := fmt.Sprintf(
				"Repos journalier de %s le %s (minimum 11h, réductible à 9h au plus 3 fois par semaine)",
				schema.FormatHours(d.rest), d.date)
			out = append(out, newInfraction(schema.RuleDailyRest, d.date, desc))
		case d.rest < minDailyRestHours-hourEpsilon:
			week := isoWeekKey(d.day)
			reducedUsed[week]++
			if reducedUsed[week] > maxReducedRestPerWeek {
				desc := fmt.Sprintf(
					"Repos journalier réduit à %s le %s pour la 4e fois dans la semaine (réduction autorisée 3 fois)",
					schema.FormatHours(d.rest), d.date)
				out = append(out, newInfraction(schema.RuleDailyRest, d.date, desc))
			}
		}
	}
	return out
}

// checkWeeklyRest flags the 6th consecutive calendar day containing any drive
// activity: a 45h weekly rest was due before it. A day without drive, or a gap
// in the recorded days, resets the run: absent data cannot prove a violation.
func checkWeeklyRest(days []dayTotals) []schema.Infraction {
	var out []schema.Infraction
	run := 0
	var prev time.Time

	for _, d := range days {
		consecutive := !prev.IsZero() && d.day.Sub(prev) == 24*time.Hour
		if d.driving > hourEpsilon {
			if consecutive {
				run++
			} else {
				run = 1
			}
			if run == maxConsecutiveDriveDays {
				desc := fmt.Sprintf(
					"6e jour consécutif comportant de la conduite au %s sans repos hebdomadaire de 45h",
					d.date)
				out = append(out, newInfraction(schema.RuleWeeklyRest, d.date, desc))
			}
		} else {
			run = 0
		}
		prev = d.day
	}
	return out
}

// isoWeekKey buckets a day into its ISO-8601 week for per-week allowances.
func isoWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
