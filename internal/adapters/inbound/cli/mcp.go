package cli

import (
	"fmt"

	mcpadapter "github.com/abdidvp/inventario/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the inventario MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start inventario MCP server (stdio)",
		Long:  "Start the inventario MCP server using stdio transport. Every successful add is committed immediately.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, true)
			if err != nil {
				return err
			}

			s := mcpadapter.NewInventoryMCPServer(a.inventory)
			serveErr := server.ServeStdio(s)

			if err := a.Close(true); err != nil {
				return fmt.Errorf("saving inventory: %w", err)
			}
			return serveErr
		},
	}

	return cmd
}
