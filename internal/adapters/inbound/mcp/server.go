package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewDodgateMCPServer creates an MCP server exposing the validation
// pipeline to AI coding assistants. workspaceRoot is the workspace the
// tools operate on.
func NewDodgateMCPServer(workspaceRoot string) *server.MCPServer {
	s := server.NewMCPServer(
		"dodgate",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, workspaceRoot)

	return s
}
