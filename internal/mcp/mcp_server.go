// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/roadworks/tachoscan/internal/contract"
)

// NewMCPServer initializes and configures the Tachoscan MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Tachoscan Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_card ---
	s.AddTool(mcp.NewTool("analyze_card",
		mcp.WithDescription("Decode a driver card file and analyze it against the EU driving and rest time rules."),
		mcp.WithString("card_path", mcp.Description("Path to the .ddd driver card file."), mcp.Required()),
		mcp.WithString("start", mcp.Description("Only include days on or after this date (YYYY-MM-DD).")),
		mcp.WithString("end", mcp.Description("Only include days on or before this date (YYYY-MM-DD).")),
	), h.handleAnalyzeCard)

	// --- 2. Tool: get_store_status ---
	s.AddTool(mcp.NewTool("get_store_status",
		mcp.WithDescription("Report the state of the report store: backend, connectivity and row counts."),
	), h.handleGetStoreStatus)

	return s
}

// StartMCPServer starts the Tachoscan MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
