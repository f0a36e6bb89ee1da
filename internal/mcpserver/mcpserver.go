// Package mcpserver exposes the analyzer over the Model Context
// Protocol so agents can query a project for unused code.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers all sweep analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates an MCP server with every tool registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "sweep",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_project",
		Description: describeProject(),
	}, handleAnalyzeProject)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_files",
		Description: describeFiles(),
	}, handleAnalyzeFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_functions",
		Description: describeFunctions(),
	}, handleAnalyzeFunctions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_assets",
		Description: describeAssets(),
	}, handleAnalyzeAssets)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_packages",
		Description: describePackages(),
	}, handleAnalyzePackages)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "graph_diagnostics",
		Description: describeGraph(),
	}, handleGraphDiagnostics)
}
