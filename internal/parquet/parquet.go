// Package parquet provides data structures and functions for exporting
// tachoscan report data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/roadworks/tachoscan/schema"
)

// AnalysisRun represents a single card analysis run with metadata.
// This struct maps to the tacho_analysis_runs database table.
type AnalysisRun struct {
	// RunID is the unique identifier for this analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// CardNumber is the analyzed driver card number
	CardNumber string `parquet:"card_number,snappy"`

	// DriverName is the card holder's printed name
	DriverName string `parquet:"driver_name,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// DaysCount is the number of recorded days in this run
	DaysCount int32 `parquet:"days_count,snappy"`

	// InfractionsCount is the number of infractions detected in this run
	InfractionsCount int32 `parquet:"infractions_count,snappy"`
}

// DaySummary represents the per-day activity totals of one analysis run.
// This struct maps to the tacho_day_summaries database table.
type DaySummary struct {
	// RunID references the parent analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// Date is the calendar day in YYYY-MM-DD
	Date string `parquet:"summary_date,snappy"`

	// DrivingHours is the total driving time for the day
	DrivingHours float64 `parquet:"driving_hours,snappy"`

	// OtherWorkHours is the total non-driving work time for the day
	OtherWorkHours float64 `parquet:"other_work_hours,snappy"`

	// AvailabilityHours is the total availability time for the day
	AvailabilityHours float64 `parquet:"availability_hours,snappy"`

	// RestHours is the total rest time for the day
	RestHours float64 `parquet:"rest_hours,snappy"`

	// TotalWorkHours is driving plus other work for the day
	TotalWorkHours float64 `parquet:"total_work_hours,snappy"`
}

// InfractionRow represents one detected infraction of an analysis run.
// This struct maps to the tacho_infractions database table.
type InfractionRow struct {
	// RunID references the parent analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// Seq preserves the analyzer ordering within the run
	Seq int32 `parquet:"seq,snappy"`

	// Code is the rule code of the violated rule
	Code string `parquet:"rule_code,snappy"`

	// Type is the human-readable rule family
	Type string `parquet:"rule_type,snappy"`

	// Severity is the regulatory gravity of the infraction
	Severity string `parquet:"severity,snappy"`

	// Date is the day the infraction is attributed to (nullable)
	Date *string `parquet:"infraction_date,optional,snappy"`

	// Description is the full infraction message
	Description string `parquet:"description,snappy"`
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the AnalysisRun struct tags
	writer := parquet.NewGenericWriter[AnalysisRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteDaySummariesParquet writes a slice of DaySummary structs to a Parquet file.
func WriteDaySummariesParquet(data []DaySummary, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the DaySummary struct tags
	writer := parquet.NewGenericWriter[DaySummary](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteInfractionsParquet writes a slice of InfractionRow structs to a Parquet file.
func WriteInfractionsParquet(data []InfractionRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the InfractionRow struct tags
	writer := parquet.NewGenericWriter[InfractionRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			RunID:            record.RunID,
			CardNumber:       record.CardNumber,
			DriverName:       record.DriverName,
			StartTime:        record.StartTime,
			EndTime:          record.EndTime,
			RunDurationMs:    record.RunDurationMs,
			DaysCount:        int32(record.DaysCount),
			InfractionsCount: int32(record.InfractionsCount),
		}
	}
	return result
}

// ConvertDaySummaryRecords converts schema.DaySummaryRecord to DaySummary for Parquet export.
func ConvertDaySummaryRecords(records []schema.DaySummaryRecord) []DaySummary {
	result := make([]DaySummary, len(records))
	for i, record := range records {
		result[i] = DaySummary{
			RunID:             record.RunID,
			Date:              record.Date,
			DrivingHours:      record.DrivingHours,
			OtherWorkHours:    record.OtherWorkHours,
			AvailabilityHours: record.AvailabilityHours,
			RestHours:         record.RestHours,
			TotalWorkHours:    record.TotalWorkHours,
		}
	}
	return result
}

// ConvertInfractionRecords converts schema.InfractionRecord to InfractionRow for Parquet export.
func ConvertInfractionRecords(records []schema.InfractionRecord) []InfractionRow {
	result := make([]InfractionRow, len(records))
	for i, record := range records {
		result[i] = InfractionRow{
			RunID:       record.RunID,
			Seq:         int32(record.Seq),
			Code:        record.Code,
			Type:        record.Type,
			Severity:    record.Severity,
			Date:        record.Date,
			Description: record.Description,
		}
	}
	return result
}
