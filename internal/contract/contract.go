// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/roadworks/tachoscan/schema"
)

// CardDecoder defines the operation that turns a raw driver card file into
// structured activity data. This allows the analysis pipeline to be tested
// without the external decoder binary.
type CardDecoder interface {
	// DecodeFile decodes a .ddd driver card file into its structured form.
	DecodeFile(ctx context.Context, path string) (*schema.DecodedCard, error)
}

// StoreManager defines the interface for managing report stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetReportStore() ReportStore
}

// ReportStore defines the interface for tracking analysis runs and storing
// their day summaries and infractions.
type ReportStore interface {
	// BeginRun creates a new analysis run and returns its unique ID
	BeginRun(startTime time.Time, driver schema.DriverIdentity) (int64, error)

	// SaveAnalysis stores the day summaries and infractions for a run
	SaveAnalysis(runID int64, analysis *schema.CardAnalysis) error

	// EndRun updates the analysis run with completion data
	EndRun(runID int64, endTime time.Time, daysCount, infractionsCount int) error

	// GetStatus returns status information about the report store
	GetStatus() (schema.StoreStatus, error)

	// GetAllRuns returns every persisted analysis run
	GetAllRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllDaySummaries returns every persisted day summary row
	GetAllDaySummaries() ([]schema.DaySummaryRecord, error)

	// GetAllInfractions returns every persisted infraction row
	GetAllInfractions() ([]schema.InfractionRecord, error)

	// Close closes the underlying connection
	Close() error
}
