package schema

// Custom types for type safety.
type (
	// ActivityType is the driver's state during an interval.
	ActivityType int

	// CardGeneration identifies which record-format version produced a record.
	CardGeneration int

	// RuleCode identifies one driving/rest rule; unique per rule type.
	RuleCode string

	// Severity is the regulatory gravity scale of an infraction.
	Severity string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for report storage.
	DatabaseBackend string
)

// Activity codes as written by the card. Any other numeric code is rejected.
const (
	ActivityRest         ActivityType = 0
	ActivityAvailability ActivityType = 1
	ActivityWork         ActivityType = 2
	ActivityDrive        ActivityType = 3
)

// Card generations a card may contain, sometimes both.
const (
	Generation1 CardGeneration = 1
	Generation2 CardGeneration = 2
)

// Rule codes for all compliance checks.
const (
	RuleContinuousDriving RuleCode = "CONDUITE_CONTINUE"
	RuleDailyDriving      RuleCode = "CONDUITE_JOURNALIERE"
	RuleWeeklyDriving     RuleCode = "CONDUITE_HEBDOMADAIRE"
	RuleBiweeklyDriving   RuleCode = "CONDUITE_BIHEBDOMADAIRE"
	RuleDailyRest         RuleCode = "REPOS_JOURNALIER"
	RuleWeeklyRest        RuleCode = "REPOS_HEBDOMADAIRE"
	RuleDataAnomaly       RuleCode = "DONNEES_INCOHERENTES"
)

// Severity scale, from worst to lightest.
const (
	SeverityTresGrave Severity = "TRES_GRAVE"
	SeverityGrave     Severity = "GRAVE"
	SeverityMoyenne   Severity = "MOYENNE"
	SeverityLegere    Severity = "LEGERE"
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// activityNames maps activity codes to their display names.
var activityNames = map[ActivityType]string{
	ActivityRest:         "REST",
	ActivityAvailability: "AVAILABILITY",
	ActivityWork:         "WORK",
	ActivityDrive:        "DRIVE",
}

// String returns the display name of an activity type.
func (a ActivityType) String() string {
	if name, ok := activityNames[a]; ok {
		return name
	}
	return "UNKNOWN"
}

// ActivityTypeFromCode maps a raw card code to its closed enumeration value.
// The boolean is false for any code outside the four known activities.
func ActivityTypeFromCode(code int) (ActivityType, bool) {
	a := ActivityType(code)
	_, ok := activityNames[a]
	return a, ok
}

// GetRuleSeverity returns the fixed severity for a rule code. The mapping is a
// policy table: episode rules that indicate fatigue risk over several hours or
// days rank grave, single-day overages rank moyenne, and informational
// findings rank legere.
func GetRuleSeverity(code RuleCode) Severity {
	switch code {
	case RuleContinuousDriving:
		return SeverityGrave
	case RuleWeeklyDriving:
		return SeverityGrave
	case RuleBiweeklyDriving:
		return SeverityTresGrave
	case RuleWeeklyRest:
		return SeverityTresGrave
	case RuleDailyDriving, RuleDailyRest:
		return SeverityMoyenne
	default: // RuleDataAnomaly and anything informational
		return SeverityLegere
	}
}

// GetRuleType returns the human-readable rule family for a rule code.
func GetRuleType(code RuleCode) string {
	switch code {
	case RuleContinuousDriving, RuleDailyDriving, RuleWeeklyDriving, RuleBiweeklyDriving:
		return "Temps de conduite"
	case RuleDailyRest, RuleWeeklyRest:
		return "Temps de repos"
	default:
		return "Données"
	}
}
