package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roadworks/tachoscan/core"
	"github.com/roadworks/tachoscan/internal/contract"
	"github.com/roadworks/tachoscan/internal/outwriter"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleAnalyzeCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardPath := request.GetString("card_path", "")
	if cardPath == "" {
		return mcp.NewToolResultError("card_path is required"), nil
	}

	cfg := h.baseCfg.Clone()
	decoder := contract.NewLocalCardDecoder(cfg.DecoderPath)
	card, err := decoder.DecodeFile(ctx, cardPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decoding failed: %v", err)), nil
	}

	analysis, err := core.AnalyzeCard(card)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	analysis = core.FilterAnalysis(analysis, request.GetString("start", ""), request.GetString("end", ""))

	jsonData, _ := json.MarshalIndent(outwriter.NewReportEnvelope(analysis), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStoreStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil {
		return mcp.NewToolResultError("report store is not initialized"), nil
	}
	store := h.mgr.GetReportStore()
	if store == nil {
		return mcp.NewToolResultError("report store is not initialized"), nil
	}

	status, err := store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
