package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadworks/tachoscan/schema"
)

func TestAnalysisRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pqSchema := parquet.SchemaOf(new(AnalysisRun))
	require.NotNil(t, pqSchema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"card_number",
		"driver_name",
		"start_time",
		"end_time",
		"run_duration_ms",
		"days_count",
		"infractions_count",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestDaySummaryStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pqSchema := parquet.SchemaOf(new(DaySummary))
	require.NotNil(t, pqSchema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"summary_date",
		"driving_hours",
		"other_work_hours",
		"availability_hours",
		"rest_hours",
		"total_work_hours",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestInfractionRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pqSchema := parquet.SchemaOf(new(InfractionRow))
	require.NotNil(t, pqSchema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"seq",
		"rule_code",
		"rule_type",
		"severity",
		"infraction_date",
		"description",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func sampleAnalysisRuns() []AnalysisRun {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(120 * time.Millisecond)
	duration := int64(120)
	return []AnalysisRun{
		{
			RunID:            1,
			CardNumber:       "1000000000000001",
			DriverName:       "Jean MARTIN",
			StartTime:        start,
			EndTime:          &end,
			RunDurationMs:    &duration,
			DaysCount:        5,
			InfractionsCount: 2,
		},
		{
			RunID:      2,
			CardNumber: "2000000000000002",
			DriverName: "Marie DUPONT",
			StartTime:  start.Add(time.Hour),
			// Run still in flight, nullable columns stay NULL.
			EndTime:          nil,
			RunDurationMs:    nil,
			DaysCount:        0,
			InfractionsCount: 0,
		},
	}
}

func TestWriteAnalysisRunsParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "analysis_runs.parquet")

	data := sampleAnalysisRuns()

	// Write data to Parquet file
	err := WriteAnalysisRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[AnalysisRun](file)
	defer reader.Close()

	readData := make([]AnalysisRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].CardNumber, readData[i].CardNumber, "CardNumber should match")
		assert.Equal(t, data[i].DriverName, readData[i].DriverName, "DriverName should match")
		assert.WithinDuration(t, data[i].StartTime, readData[i].StartTime, time.Nanosecond, "StartTime should match within nanosecond precision")
		assert.Equal(t, data[i].DaysCount, readData[i].DaysCount, "DaysCount should match")
		assert.Equal(t, data[i].InfractionsCount, readData[i].InfractionsCount, "InfractionsCount should match")

		// Check nullable fields
		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime, "EndTime should not be nil")
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond, "EndTime should match within nanosecond precision")
		}

		if data[i].RunDurationMs == nil {
			assert.Nil(t, readData[i].RunDurationMs, "RunDurationMs should be nil")
		} else {
			require.NotNil(t, readData[i].RunDurationMs, "RunDurationMs should not be nil")
			assert.Equal(t, *data[i].RunDurationMs, *readData[i].RunDurationMs, "RunDurationMs should match")
		}
	}
}

func TestWriteDaySummariesParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "day_summaries.parquet")

	data := []DaySummary{
		{RunID: 1, Date: "2025-03-03", DrivingHours: 7.5, OtherWorkHours: 1, AvailabilityHours: 0.5, RestHours: 15, TotalWorkHours: 8.5},
		{RunID: 1, Date: "2025-03-04", DrivingHours: 8.25, OtherWorkHours: 1, AvailabilityHours: 0.5, RestHours: 14.25, TotalWorkHours: 9.25},
	}

	err := WriteDaySummariesParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[DaySummary](file)
	defer reader.Close()

	readData := make([]DaySummary, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, len(data), n, "Should read all records")
	assert.Equal(t, data, readData)
}

func TestWriteInfractionsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "infractions.parquet")

	date := "2025-03-03"
	data := []InfractionRow{
		{RunID: 1, Seq: 0, Code: "CONDUITE_CONTINUE", Type: "Temps de conduite", Severity: "GRAVE", Date: &date, Description: "Conduite continue de 5h00 sans pause valable"},
		{RunID: 1, Seq: 1, Code: "ANOMALIE_DONNEES", Type: "Données", Severity: "LEGERE", Date: nil, Description: "Données incohérentes"},
	}

	err := WriteInfractionsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[InfractionRow](file)
	defer reader.Close()

	readData := make([]InfractionRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, len(data), n, "Should read all records")

	assert.Equal(t, data[0].Code, readData[0].Code)
	require.NotNil(t, readData[0].Date)
	assert.Equal(t, date, *readData[0].Date)
	assert.Nil(t, readData[1].Date, "Dateless infraction should stay NULL")
}

func TestConvertAnalysisRunRecords(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	duration := int64(42)
	records := []schema.AnalysisRunRecord{
		{RunID: 7, CardNumber: "1000000000000001", DriverName: "Jean MARTIN", StartTime: start, RunDurationMs: &duration, DaysCount: 5, InfractionsCount: 3},
	}

	converted := ConvertAnalysisRunRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, int64(7), converted[0].RunID)
	assert.Equal(t, "Jean MARTIN", converted[0].DriverName)
	assert.Equal(t, int32(5), converted[0].DaysCount)
	assert.Equal(t, int32(3), converted[0].InfractionsCount)
	assert.Nil(t, converted[0].EndTime)
	require.NotNil(t, converted[0].RunDurationMs)
	assert.Equal(t, duration, *converted[0].RunDurationMs)
}

func TestConvertDaySummaryRecords(t *testing.T) {
	records := []schema.DaySummaryRecord{
		{RunID: 7, Date: "2025-03-03", DrivingHours: 7.5, OtherWorkHours: 1, AvailabilityHours: 0.5, RestHours: 15, TotalWorkHours: 8.5},
	}

	converted := ConvertDaySummaryRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, int64(7), converted[0].RunID)
	assert.Equal(t, "2025-03-03", converted[0].Date)
	assert.Equal(t, 8.5, converted[0].TotalWorkHours)
}

func TestConvertInfractionRecords(t *testing.T) {
	date := "2025-03-03"
	records := []schema.InfractionRecord{
		{RunID: 7, Seq: 2, Code: "REPOS_JOURNALIER", Type: "Temps de repos", Severity: "MOYENNE", Date: &date, Description: "Repos journalier insuffisant"},
		{RunID: 7, Seq: 3, Code: "ANOMALIE_DONNEES", Type: "Données", Severity: "LEGERE", Date: nil, Description: "Données incohérentes"},
	}

	converted := ConvertInfractionRecords(records)
	require.Len(t, converted, 2)
	assert.Equal(t, int32(2), converted[0].Seq)
	require.NotNil(t, converted[0].Date)
	assert.Equal(t, date, *converted[0].Date)
	assert.Nil(t, converted[1].Date)

	assert.Empty(t, ConvertInfractionRecords(nil))
}
