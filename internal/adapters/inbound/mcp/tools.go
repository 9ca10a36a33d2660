package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/inventario/internal/domain"
)

type addResult struct {
	Added []string `json:"added"`
	Count int      `json:"count"`
}

type listResult struct {
	Codes []domain.ProductCode `json:"codes"`
	Count int                  `json:"count"`
}

// registerTools registers all inventario MCP tools on the given server.
func registerTools(s *server.MCPServer, inv Inventory) {
	s.AddTool(
		mcplib.NewTool("inventory_add",
			mcplib.WithDescription("Record product codes as one batch. Fails as a whole if any code is empty or rejected."),
			mcplib.WithString("codes",
				mcplib.Required(),
				mcplib.Description("Comma-separated product codes"),
			),
		),
		handleAdd(inv),
	)

	s.AddTool(
		mcplib.NewTool("inventory_capture",
			mcplib.WithDescription("Capture a batch of codes from the configured reader and record it"),
		),
		handleCapture(inv),
	)

	s.AddTool(
		mcplib.NewTool("inventory_list",
			mcplib.WithDescription("Returns every recorded product code as JSON"),
		),
		handleList(inv),
	)
}

func handleAdd(inv Inventory) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, err := request.RequireString("codes")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		batch, err := inv.AddCodes(ctx, strings.Split(raw, ",")...)
		if err != nil {
			return errorResult(fmt.Sprintf("add failed: %v", err)), nil
		}
		return jsonResult(addResult{Added: batch.Strings(), Count: batch.Len()})
	}
}

func handleCapture(inv Inventory) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		batch, err := inv.AddFromDevice(ctx)
		if err != nil {
			return errorResult(fmt.Sprintf("capture failed: %v", err)), nil
		}
		return jsonResult(addResult{Added: batch.Strings(), Count: batch.Len()})
	}
}

func handleList(inv Inventory) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		codes, err := inv.List(ctx)
		if err != nil {
			return errorResult(fmt.Sprintf("list failed: %v", err)), nil
		}
		if codes == nil {
			codes = []domain.ProductCode{}
		}
		return jsonResult(listResult{Codes: codes, Count: len(codes)})
	}
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error result with the given message.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
