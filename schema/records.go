package schema

import "time"

// AnalysisRunRecord is one persisted analysis run, as stored by the report store.
type AnalysisRunRecord struct {
	RunID            int64      `json:"run_id"`
	CardNumber       string     `json:"card_number"`
	DriverName       string     `json:"driver_name"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	RunDurationMs    *int64     `json:"run_duration_ms"`
	DaysCount        int        `json:"days_count"`
	InfractionsCount int        `json:"infractions_count"`
}

// DaySummaryRecord is one persisted per-day summary row.
type DaySummaryRecord struct {
	RunID             int64   `json:"run_id"`
	Date              string  `json:"date"`
	DrivingHours      float64 `json:"driving_hours"`
	OtherWorkHours    float64 `json:"other_work_hours"`
	AvailabilityHours float64 `json:"availability_hours"`
	RestHours         float64 `json:"rest_hours"`
	TotalWorkHours    float64 `json:"total_work_hours"`
}

// InfractionRecord is one persisted infraction row. Seq preserves the
// deterministic analyzer order within a run.
type InfractionRecord struct {
	RunID       int64   `json:"run_id"`
	Seq         int     `json:"seq"`
	Code        string  `json:"code"`
	Type        string  `json:"type"`
	Severity    string  `json:"severity"`
	Date        *string `json:"date"`
	Description string  `json:"description"`
}

// StoreStatus summarizes the state of the report store.
type StoreStatus struct {
	Backend     string           `json:"backend"`
	Connected   bool             `json:"connected"`
	TotalRuns   int64            `json:"total_runs"`
	LastRunID   int64            `json:"last_run_id"`
	LastRunTime time.Time        `json:"last_run_time"`
	TableSizes  map[string]int64 `json:"table_sizes"`
}
