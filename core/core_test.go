package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/roadworks/tachoscan/internal/contract"
	"github.com/roadworks/tachoscan/internal/reportstore"
)

// missingDecoder is a binary name that never resolves via PATH, forcing the
// decoder's deterministic mock card fallback.
const missingDecoder = "tachoscan-test-missing-decoder"

func executorConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		CardPath:    filepath.Join(t.TempDir(), "card.ddd"),
		DecoderPath: missingDecoder,
		ResultLimit: contract.DefaultResultLimit,
		Precision:   contract.DefaultPrecision,
		Output:      "json",
		OutputFile:  filepath.Join(t.TempDir(), "out.json"),
	}
}

func mockedManager(t *testing.T) (*reportstore.MockStoreManager, *reportstore.MockReportStore) {
	t.Helper()
	store := &reportstore.MockReportStore{}
	store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(1), nil)
	store.On("SaveAnalysis", int64(1), mock.Anything).Return(nil)
	store.On("EndRun", int64(1), mock.Anything, mock.Anything, mock.Anything).Return(nil)

	mgr := &reportstore.MockStoreManager{}
	mgr.On("GetReportStore").Return(store)
	return mgr, store
}

// TestExecuteAnalyzeReport runs the analyze executor end to end with the mock
// card fallback and a mocked store.
func TestExecuteAnalyzeReport(t *testing.T) {
	cfg := executorConfig(t)
	mgr, store := mockedManager(t)

	err := ExecuteAnalyzeReport(context.Background(), cfg, mgr)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var envelope struct {
		Success bool `json:"success"`
		Driver  struct {
			Name string `json:"name"`
		} `json:"driver"`
		Days        []json.RawMessage `json:"days"`
		Infractions []json.RawMessage `json:"infractions"`
	}
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "MARTIN", envelope.Driver.Name)
	assert.Len(t, envelope.Days, 5)
	assert.NotNil(t, envelope.Infractions)

	store.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

// TestExecuteAnalyzeDays verifies the days executor honors the result limit.
func TestExecuteAnalyzeDays(t *testing.T) {
	cfg := executorConfig(t)
	cfg.ResultLimit = 2
	mgr, store := mockedManager(t)

	err := ExecuteAnalyzeDays(context.Background(), cfg, mgr)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var days []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &days))
	assert.Len(t, days, 2)

	// The store always receives the full, unlimited analysis.
	store.AssertCalled(t, "EndRun", int64(1), mock.Anything, 5, 0)
}

// TestExecuteAnalyzeInfractions verifies the infractions executor succeeds on a
// clean card.
func TestExecuteAnalyzeInfractions(t *testing.T) {
	cfg := executorConfig(t)
	mgr, _ := mockedManager(t)

	err := ExecuteAnalyzeInfractions(context.Background(), cfg, mgr)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var infractions []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &infractions))
	assert.Empty(t, infractions)
}

// TestExecuteAnalyzeReportNoCard verifies a missing card path is an error.
func TestExecuteAnalyzeReportNoCard(t *testing.T) {
	cfg := executorConfig(t)
	cfg.CardPath = ""

	err := ExecuteAnalyzeReport(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no card file provided")
}

// TestExecuteAnalyzeReportNilManager verifies persistence is optional.
func TestExecuteAnalyzeReportNilManager(t *testing.T) {
	cfg := executorConfig(t)
	err := ExecuteAnalyzeReport(context.Background(), cfg, nil)
	require.NoError(t, err)
}

// TestPersistAnalysisNoOpRun verifies a zero run ID skips the save path.
func TestPersistAnalysisNoOpRun(t *testing.T) {
	store := &reportstore.MockReportStore{}
	store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), nil)
	mgr := &reportstore.MockStoreManager{}
	mgr.On("GetReportStore").Return(store)

	cfg := executorConfig(t)
	err := ExecuteAnalyzeReport(context.Background(), cfg, mgr)
	require.NoError(t, err)

	store.AssertNotCalled(t, "SaveAnalysis", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
