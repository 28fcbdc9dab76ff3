package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/roadworks/tachoscan/core"
	"github.com/roadworks/tachoscan/internal/contract"
	"github.com/roadworks/tachoscan/internal/outwriter"
	"github.com/roadworks/tachoscan/schema"
)

// maxUploadBytes bounds the accepted card file size. Real driver card dumps
// are well under 1 MiB; anything larger is not a card file.
const maxUploadBytes = 10 << 20

// Handler coordinates HTTP requests with the analysis pipeline.
type Handler struct {
	decoder   contract.CardDecoder
	mgr       contract.StoreManager
	uploadDir string
}

// NewHandler builds a Handler. An empty uploadDir falls back to the system
// temp directory.
func NewHandler(decoder contract.CardDecoder, mgr contract.StoreManager, uploadDir string) *Handler {
	return &Handler{decoder: decoder, mgr: mgr, uploadDir: uploadDir}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/upload-card", h.uploadCard)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// uploadCard accepts a multipart card file upload, runs the analysis and
// returns the full report envelope. Any failure maps to the single error
// shape; clients never see partial results.
func (h *Handler) uploadCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeFailure(w, http.StatusMethodNotAllowed, fmt.Errorf("methode %s non supportee", r.Method))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeFailure(w, http.StatusBadRequest, fmt.Errorf("fichier carte manquant ou trop volumineux: %w", err))
		return
	}

	upload, _, err := r.FormFile("card")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, fmt.Errorf("champ 'card' manquant: %w", err))
		return
	}
	defer func() { _ = upload.Close() }()

	// The decoder binary reads from disk, so the upload lands in a temp file
	// that is always removed, even when analysis fails.
	tmp, err := os.CreateTemp(h.uploadDir, "card-*.ddd")
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, err)
		return
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	_, err = io.Copy(tmp, upload)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, err)
		return
	}

	start := time.Now()
	card, err := h.decoder.DecodeFile(r.Context(), tmpPath)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, err)
		return
	}

	analysis, err := core.AnalyzeCard(card)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, err)
		return
	}

	analysis = core.FilterAnalysis(analysis, r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	h.persist(start, analysis)

	writeJSON(w, http.StatusOK, outwriter.NewReportEnvelope(analysis))
}

// persist records the run in the report store when one is configured.
// Persistence failures must not fail the request.
func (h *Handler) persist(start time.Time, analysis *schema.CardAnalysis) {
	if h.mgr == nil {
		return
	}
	store := h.mgr.GetReportStore()
	if store == nil {
		return
	}
	runID, err := store.BeginRun(start, analysis.Driver)
	if err != nil {
		contract.LogWarn("beginning analysis run", err)
		return
	}
	if runID == 0 {
		return
	}
	if err := store.SaveAnalysis(runID, analysis); err != nil {
		contract.LogWarn("saving analysis results", err)
		return
	}
	if err := store.EndRun(runID, time.Now(), len(analysis.Days), len(analysis.Infractions)); err != nil {
		contract.LogWarn("finalizing analysis run", err)
	}
}

// writeFailure writes the single wire error shape.
func writeFailure(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, schema.NewAnalysisFailure(err))
}

// writeJSON serializes a response body with the proper content type.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
