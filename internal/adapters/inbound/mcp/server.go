package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewChecklightMCPServer creates a new MCP server with all Checklight tools
// registered. The projectPath is the repository root used to resolve
// relative checklist and metrics paths and to stamp reports.
func NewChecklightMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"checklight",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, projectPath)

	return s
}
