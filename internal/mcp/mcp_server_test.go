package mcp_test

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadworks/tachoscan/internal/contract"
	mcp_internal "github.com/roadworks/tachoscan/internal/mcp"
	"github.com/roadworks/tachoscan/internal/reportstore"
	"github.com/roadworks/tachoscan/schema"
)

// callTool invokes a registered tool by name with the given arguments.
func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	content, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "Tool result content should be text")
	return content.Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		DecoderPath: contract.DefaultDecoderName,
	}

	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	t.Run("analyze_card missing card_path", func(t *testing.T) {
		res := callTool(t, s, "analyze_card", map[string]any{
			"card_path": "",
		})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "card_path is required")
	})

	t.Run("get_store_status without store", func(t *testing.T) {
		res := callTool(t, s, "get_store_status", map[string]any{})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "not initialized")
	})
}

func TestMCPServerHandlers_AnalyzeCard(t *testing.T) {
	// A decoder path that resolves to nothing triggers the deterministic mock
	// card, which makes the tool output predictable.
	baseCfg := &contract.Config{
		DecoderPath: "tachoscan-test-missing-decoder",
	}
	s := mcp_internal.NewMCPServer(baseCfg, nil)

	res := callTool(t, s, "analyze_card", map[string]any{
		"card_path": "card.ddd",
	})
	require.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, `"success": true`)
	assert.Contains(t, text, "MARTIN")
	assert.Contains(t, text, `"infractions": []`)
}

func TestMCPServerHandlers_GetStoreStatus(t *testing.T) {
	store := &reportstore.MockReportStore{}
	store.On("GetStatus").Return(schema.StoreStatus{
		Backend:     string(schema.SQLiteBackend),
		Connected:   true,
		TotalRuns:   3,
		LastRunID:   3,
		LastRunTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}, nil)

	mgr := &reportstore.MockStoreManager{}
	mgr.On("GetReportStore").Return(store)

	s := mcp_internal.NewMCPServer(&contract.Config{}, mgr)

	res := callTool(t, s, "get_store_status", map[string]any{})
	require.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, `"backend": "sqlite"`)
	assert.Contains(t, text, `"total_runs": 3`)
	store.AssertExpectations(t)
}
