// Package schema has configs, models and wire contracts for all parts of tachoscan.
package schema

import "time"

// ActivityChangePoint is an instantaneous activity state change recorded by the
// card at a given minute offset within one calendar day.
type ActivityChangePoint struct {
	OffsetMinutes int `json:"minutes"`   // Minute offset within the day, valid range [0,1440)
	TypeCode      int `json:"work_type"` // Raw activity code as written by the card (0-3)
}

// DailyChangeRecord is one day's ordered list of activity change points, as
// produced by one card generation. ChangePoints are expected sorted ascending
// by offset; consumers must not rely on it.
type DailyChangeRecord struct {
	Date         string // Calendar date in YYYY-MM-DD
	ChangePoints []ActivityChangePoint
	Generation   CardGeneration
}

// ActivityInterval is a typed, non-overlapping slice of one day derived from
// consecutive change points. For a fully recorded day the intervals cover
// [0,1440) with no gaps and EndMinute > StartMinute.
type ActivityInterval struct {
	Date        string
	StartMinute int
	EndMinute   int
	Activity    ActivityType
}

// DurationMinutes returns the interval length in minutes.
func (iv ActivityInterval) DurationMinutes() int {
	return iv.EndMinute - iv.StartMinute
}

// DurationHours returns the interval length in hours.
func (iv ActivityInterval) DurationHours() float64 {
	return float64(iv.EndMinute-iv.StartMinute) / 60.0
}

// DailySummary is the per-calendar-day activity total. Hour fields accumulate
// at full floating precision; rounding to two decimals happens exactly once
// when the engine finalizes its output.
type DailySummary struct {
	Date              string  `json:"date"`
	DrivingHours      float64 `json:"drivingHours"`
	OtherWorkHours    float64 `json:"otherWorkHours"`
	AvailabilityHours float64 `json:"availabilityHours"`
	RestHours         float64 `json:"restHours"`
	TotalWorkHours    float64 `json:"totalWorkHours"` // Always DrivingHours + OtherWorkHours
}

// Infraction is one detected violation of the driving/rest rules. Date is
// empty for violations that cannot be attributed to a single day. Infractions
// carry no identity beyond their content.
type Infraction struct {
	Code        RuleCode `json:"code"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Date        string   `json:"date,omitempty"`
	Severity    Severity `json:"severity"`
}

// DriverIdentity is the card holder block, attached unchanged to the analysis
// output. Name holds the surname, matching the wire contract.
type DriverIdentity struct {
	Name       string `json:"name"`
	FirstName  string `json:"firstName"`
	CardNumber string `json:"cardNumber"`
}

// CardAnalysis is the full result of analyzing one card: days sorted
// most-recent-first, infractions sorted by date then rule code.
type CardAnalysis struct {
	Driver      DriverIdentity `json:"driver"`
	Days        []DailySummary `json:"days"`
	Infractions []Infraction   `json:"infractions"`
}

// AnalysisFailure is the single error shape crossing the engine boundary.
// No other error type is ever exposed to the presentation layer.
type AnalysisFailure struct {
	Message string `json:"error"`
	Details string `json:"details"`
}

// NewAnalysisFailure wraps an engine error into the external failure shape.
func NewAnalysisFailure(err error) *AnalysisFailure {
	return &AnalysisFailure{Message: "Erreur analyse fichier", Details: err.Error()}
}

// Error implements the error interface.
func (f *AnalysisFailure) Error() string {
	return f.Message + ": " + f.Details
}

// DecodedCard mirrors the JSON emitted by the external dddparser binary. Only
// the blocks the engine consumes are mapped; the rest of the decoder output is
// ignored on unmarshal.
type DecodedCard struct {
	Identification1 *IdentificationBlock `json:"card_identification_and_driver_card_holder_identification_1"`
	Activity1       *ActivityBlock       `json:"card_driver_activity_1"`
	Activity2       *ActivityBlock       `json:"card_driver_activity_2"`
}

// IdentificationBlock is the gen-1 identification section of the card dump.
type IdentificationBlock struct {
	HolderIdentification *HolderIdentification `json:"driver_card_holder_identification"`
	CardIdentification   *CardIdentification   `json:"card_identification"`
}

// HolderIdentification nests the card holder name.
type HolderIdentification struct {
	Name *HolderName `json:"card_holder_name"`
}

// HolderName is the card holder's printed name.
type HolderName struct {
	Surname    string `json:"holder_surname"`
	FirstNames string `json:"holder_first_names"`
}

// CardIdentification carries the card number.
type CardIdentification struct {
	CardNumber string `json:"card_number"`
}

// ActivityBlock is one card generation's decoded daily activity section.
type ActivityBlock struct {
	DailyRecords []DailyRecord `json:"decoded_activity_daily_records"`
}

// DailyRecord is one day's raw record as decoded from the card.
type DailyRecord struct {
	RecordDate string                `json:"activity_record_date"` // ISO timestamp, e.g. 2024-03-05T00:00:00Z
	ChangeInfo []ActivityChangePoint `json:"activity_change_info"`
}

// Driver extracts the holder identity from the gen-1 identification block.
// Missing fields fall back the same way the original card readers do.
func (c *DecodedCard) Driver() DriverIdentity {
	d := DriverIdentity{Name: "Inconnu"}
	id := c.Identification1
	if id == nil {
		return d
	}
	if hi := id.HolderIdentification; hi != nil && hi.Name != nil {
		if hi.Name.Surname != "" {
			d.Name = hi.Name.Surname
		}
		d.FirstName = hi.Name.FirstNames
	}
	if ci := id.CardIdentification; ci != nil {
		d.CardNumber = ci.CardNumber
	}
	return d
}

// Records flattens both generations' daily records into DailyChangeRecord
// values keyed by calendar date. Records without a parseable date are skipped,
// matching the tolerance of the upstream decoder output.
func (c *DecodedCard) Records() []DailyChangeRecord {
	var out []DailyChangeRecord
	appendBlock := func(block *ActivityBlock, gen CardGeneration) {
		if block == nil {
			return
		}
		for _, rec := range block.DailyRecords {
			date, ok := DateKey(rec.RecordDate)
			if !ok {
				continue
			}
			out = append(out, DailyChangeRecord{
				Date:         date,
				ChangePoints: rec.ChangeInfo,
				Generation:   gen,
			})
		}
	}
	appendBlock(c.Activity1, Generation1)
	appendBlock(c.Activity2, Generation2)
	return out
}

// DateKey normalizes a record timestamp to its YYYY-MM-DD calendar date.
func DateKey(timestamp string) (string, bool) {
	if len(timestamp) >= 10 {
		if _, err := time.Parse("2006-01-02", timestamp[:10]); err == nil {
			return timestamp[:10], true
		}
	}
	if t, err := time.Parse(time.RFC3339, timestamp); err == nil {
		return t.UTC().Format("2006-01-02"), true
	}
	return "", false
}
