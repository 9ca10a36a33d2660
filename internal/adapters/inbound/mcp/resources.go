package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/inventario/internal/domain"
)

const codesURI = "inventory://codes"

// registerResources registers all inventario MCP resources on the given server.
func registerResources(s *server.MCPServer, inv Inventory) {
	s.AddResource(
		mcplib.NewResource(
			codesURI,
			"Inventory Codes",
			mcplib.WithResourceDescription("Every recorded product code"),
			mcplib.WithMIMEType("application/json"),
		),
		handleCodesResource(inv),
	)
}

func handleCodesResource(inv Inventory) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		codes, err := inv.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing inventory: %w", err)
		}
		if codes == nil {
			codes = []domain.ProductCode{}
		}

		data, err := json.MarshalIndent(listResult{Codes: codes, Count: len(codes)}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling codes: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      codesURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
