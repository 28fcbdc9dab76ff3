package reportstore

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/roadworks/tachoscan/internal/contract"
	"github.com/roadworks/tachoscan/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetReportStore implements the StoreManager interface.
func (m *MockStoreManager) GetReportStore() contract.ReportStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ReportStore)
	return store
}

// MockReportStore is a mock implementation of ReportStore for testing.
type MockReportStore struct {
	mock.Mock
}

var _ contract.ReportStore = &MockReportStore{} // Compile-time check

// BeginRun implements the ReportStore interface.
func (m *MockReportStore) BeginRun(startTime time.Time, driver schema.DriverIdentity) (int64, error) {
	args := m.Called(startTime, driver)
	return args.Get(0).(int64), args.Error(1)
}

// SaveAnalysis implements the ReportStore interface.
func (m *MockReportStore) SaveAnalysis(runID int64, analysis *schema.CardAnalysis) error {
	args := m.Called(runID, analysis)
	return args.Error(0)
}

// EndRun implements the ReportStore interface.
func (m *MockReportStore) EndRun(runID int64, endTime time.Time, daysCount, infractionsCount int) error {
	args := m.Called(runID, endTime, daysCount, infractionsCount)
	return args.Error(0)
}

// GetStatus implements the ReportStore interface.
func (m *MockReportStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// GetAllRuns implements the ReportStore interface.
func (m *MockReportStore) GetAllRuns() ([]schema.AnalysisRunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.AnalysisRunRecord)
	return records, args.Error(1)
}

// GetAllDaySummaries implements the ReportStore interface.
func (m *MockReportStore) GetAllDaySummaries() ([]schema.DaySummaryRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.DaySummaryRecord)
	return records, args.Error(1)
}

// GetAllInfractions implements the ReportStore interface.
func (m *MockReportStore) GetAllInfractions() ([]schema.InfractionRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.InfractionRecord)
	return records, args.Error(1)
}

// Close implements the ReportStore interface.
func (m *MockReportStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
