package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/roadworks/tachoscan/internal/contract"
	"github.com/roadworks/tachoscan/internal/httpapi"
)

// serveCmd starts the HTTP upload API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for card file uploads.",
	Long: `Run an HTTP server that accepts driver card uploads and returns analysis reports.

Endpoints:
  POST /api/upload-card  - multipart upload (field 'card'), returns the JSON report
  GET  /healthz          - liveness probe

The upload endpoint accepts optional 'start' and 'end' query parameters to
restrict the report to a date range. When a report store backend is
configured, every successful analysis run is persisted.

Examples:
  # Listen on the default address
  tachoscan serve

  # Custom address and a persistent report store
  tachoscan serve --addr :8080 --store-backend sqlite

  # Upload a card with curl
  curl -F card=@card.ddd 'http://localhost:3001/api/upload-card?start=2025-03-01'`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		decoder := contract.NewLocalCardDecoder(cfg.DecoderPath)
		handler := httpapi.NewHandler(decoder, storeManager, cfg.UploadDir)

		mux := http.NewServeMux()
		handler.RegisterRoutes(mux)

		srv := httpapi.NewServer(httpapi.DefaultServerConfig(cfg.HTTPAddr), mux)
		fmt.Printf("Listening on %s\n", srv.Addr)
		return srv.ListenAndServe()
	},
}
