package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/roadworks/tachoscan/internal/contract"
	"github.com/roadworks/tachoscan/internal/reportstore"
	"github.com/roadworks/tachoscan/schema"
)

// fakeDecoder returns a canned card or error instead of shelling out.
type fakeDecoder struct {
	card *schema.DecodedCard
	err  error
}

func (d *fakeDecoder) DecodeFile(_ context.Context, _ string) (*schema.DecodedCard, error) {
	return d.card, d.err
}

// newUploadRequest builds a multipart POST with the card file under the given
// field name.
func newUploadRequest(t *testing.T, target, field string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, "card.ddd")
	require.NoError(t, err)
	_, err = part.Write([]byte("raw card bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newTestMux(decoder contract.CardDecoder, mgr contract.StoreManager, uploadDir string) *http.ServeMux {
	mux := http.NewServeMux()
	NewHandler(decoder, mgr, uploadDir).RegisterRoutes(mux)
	return mux
}

// TestUploadCardSuccess verifies a full decode and analysis round trip over HTTP.
func TestUploadCardSuccess(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	decoder := &fakeDecoder{card: contract.MockCard(now)}
	mux := newTestMux(decoder, nil, t.TempDir())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, newUploadRequest(t, "/api/upload-card", "card"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var envelope struct {
		Success     bool                  `json:"success"`
		Driver      schema.DriverIdentity `json:"driver"`
		Days        []schema.DailySummary `json:"days"`
		Infractions []schema.Infraction   `json:"infractions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "MARTIN", envelope.Driver.Name)
	assert.Len(t, envelope.Days, 5)
	assert.Empty(t, envelope.Infractions)
}

// TestUploadCardDateFilter verifies start/end query params restrict the report.
func TestUploadCardDateFilter(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	decoder := &fakeDecoder{card: contract.MockCard(now)}
	mux := newTestMux(decoder, nil, t.TempDir())

	req := newUploadRequest(t, "/api/upload-card?start=2025-03-06&end=2025-03-07", "card")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Days []schema.DailySummary `json:"days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Days, 2)
	assert.Equal(t, "2025-03-07", envelope.Days[0].Date)
	assert.Equal(t, "2025-03-06", envelope.Days[1].Date)
}

// TestUploadCardMethodNotAllowed verifies non-POST requests are rejected with
// the single error shape.
func TestUploadCardMethodNotAllowed(t *testing.T) {
	mux := newTestMux(&fakeDecoder{}, nil, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/api/upload-card", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
	assert.Contains(t, rec.Body.String(), "Erreur analyse fichier")
}

// TestUploadCardMissingField verifies a multipart body without the card field
// is a bad request.
func TestUploadCardMissingField(t *testing.T) {
	mux := newTestMux(&fakeDecoder{}, nil, t.TempDir())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, newUploadRequest(t, "/api/upload-card", "document"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Erreur analyse fichier")
}

// TestUploadCardDecoderFailure verifies decoder errors surface as the single
// error shape with details.
func TestUploadCardDecoderFailure(t *testing.T) {
	decoder := &fakeDecoder{err: errors.New("fichier carte corrompu")}
	mux := newTestMux(decoder, nil, t.TempDir())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, newUploadRequest(t, "/api/upload-card", "card"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var failure struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failure))
	assert.Equal(t, "Erreur analyse fichier", failure.Error)
	assert.Contains(t, failure.Details, "corrompu")
}

// TestUploadCardPersists verifies a configured store records the run.
func TestUploadCardPersists(t *testing.T) {
	store := &reportstore.MockReportStore{}
	store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(1), nil)
	store.On("SaveAnalysis", int64(1), mock.Anything).Return(nil)
	store.On("EndRun", int64(1), mock.Anything, 5, 0).Return(nil)

	mgr := &reportstore.MockStoreManager{}
	mgr.On("GetReportStore").Return(store)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	mux := newTestMux(&fakeDecoder{card: contract.MockCard(now)}, mgr, t.TempDir())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, newUploadRequest(t, "/api/upload-card", "card"))

	require.Equal(t, http.StatusOK, rec.Code)
	store.AssertExpectations(t)
}

// TestUploadCardPersistFailureDoesNotFailRequest verifies store errors never
// break the response.
func TestUploadCardPersistFailureDoesNotFailRequest(t *testing.T) {
	store := &reportstore.MockReportStore{}
	store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	mgr := &reportstore.MockStoreManager{}
	mgr.On("GetReportStore").Return(store)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	mux := newTestMux(&fakeDecoder{card: contract.MockCard(now)}, mgr, t.TempDir())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, newUploadRequest(t, "/api/upload-card", "card"))

	assert.Equal(t, http.StatusOK, rec.Code)
	store.AssertNotCalled(t, "SaveAnalysis", mock.Anything, mock.Anything)
}

// TestHealthz verifies the health endpoint.
func TestHealthz(t *testing.T) {
	mux := newTestMux(&fakeDecoder{}, nil, t.TempDir())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

// TestDefaultServerConfig verifies server tunables.
func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig(":9090")
	srv := NewServer(cfg, http.NewServeMux())

	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, 30*time.Second, srv.ReadTimeout)
	assert.Equal(t, 60*time.Second, srv.WriteTimeout)
	assert.Equal(t, 120*time.Second, srv.IdleTimeout)
}
