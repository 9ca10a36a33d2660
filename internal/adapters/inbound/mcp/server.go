package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/inventario/internal/domain"
)

// Inventory is the subset of the inventory service exposed over MCP.
type Inventory interface {
	AddCodes(ctx context.Context, codes ...string) (domain.Batch, error)
	AddFromDevice(ctx context.Context) (domain.Batch, error)
	List(ctx context.Context) ([]domain.ProductCode, error)
}

// NewInventoryMCPServer creates a new MCP server with all inventario tools
// and resources registered.
func NewInventoryMCPServer(inv Inventory) *server.MCPServer {
	s := server.NewMCPServer(
		"inventario",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, inv)
	registerResources(s, inv)

	return s
}
