package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/sweeplab/sweep/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes sweep's analyzers
as tools that LLMs can invoke against a Dart or Flutter project.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "sweep": {
        "command": "sweep",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze_project    Full analysis across all domains
  - analyze_files      Files unreachable from entry points
  - analyze_functions  Declared functions with no references
  - analyze_assets     Asset files never referenced
  - analyze_packages   Dependencies never imported
  - graph_diagnostics  Dependency graph metrics and import cycles`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	server := mcpserver.NewServer(version)
	return server.Run(context.Background())
}
