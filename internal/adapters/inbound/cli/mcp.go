package cli

import (
	mcpadapter "github.com/dodgate/dodgate/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the dodgate MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var workspacePath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dodgate MCP server (stdio)",
		Long:  "Start the dodgate MCP server using stdio transport. This allows AI coding assistants to run the gate and verify receipts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workspacePath == "" {
				workspacePath = "."
			}
			s := mcpadapter.NewDodgateMCPServer(workspacePath)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&workspacePath, "path", "", "Workspace path (defaults to current working directory)")

	return cmd
}
