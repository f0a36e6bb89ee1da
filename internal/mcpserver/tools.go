package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sweeplab/sweep/internal/analyzer"
	"github.com/sweeplab/sweep/internal/graph"
	"github.com/sweeplab/sweep/pkg/config"
	"github.com/sweeplab/sweep/pkg/models"
	toon "github.com/toon-format/toon-go"
)

// AnalyzeInput is the shared input for all analysis tools.
type AnalyzeInput struct {
	Path   string `json:"path,omitempty" jsonschema:"Project root to analyze. Defaults to the current directory."`
	Config string `json:"config,omitempty" jsonschema:"Path to a sweep config file. Defaults to auto-discovery in the project."`
}

func projectRoot(input AnalyzeInput) string {
	if input.Path == "" {
		return "."
	}
	return input.Path
}

func newAnalyzer(input AnalyzeInput) (*analyzer.Analyzer, error) {
	var cfg *config.Config
	var err error
	if input.Config != "" {
		cfg, err = config.Load(input.Config)
	} else {
		cfg, err = config.LoadOrDefault(projectRoot(input))
	}
	if err != nil {
		return nil, err
	}
	return analyzer.New(analyzer.WithConfig(cfg)), nil
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(out)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func runDomain(input AnalyzeInput, run func(*analyzer.Analyzer, string) (*models.AnalysisResult, error)) (*mcp.CallToolResult, any, error) {
	a, err := newAnalyzer(input)
	if err != nil {
		return toolError(err.Error())
	}
	result, err := run(a, projectRoot(input))
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result)
}

func handleAnalyzeProject(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	return runDomain(input, (*analyzer.Analyzer).AnalyzeProject)
}

func handleAnalyzeFiles(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	return runDomain(input, (*analyzer.Analyzer).AnalyzeFiles)
}

func handleAnalyzeFunctions(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	return runDomain(input, (*analyzer.Analyzer).AnalyzeFunctions)
}

func handleAnalyzeAssets(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	return runDomain(input, (*analyzer.Analyzer).AnalyzeAssets)
}

func handleAnalyzePackages(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	return runDomain(input, (*analyzer.Analyzer).AnalyzePackages)
}

func handleGraphDiagnostics(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	a, err := newAnalyzer(input)
	if err != nil {
		return toolError(err.Error())
	}
	metrics, cycles, err := a.GraphMetrics(projectRoot(input))
	if err != nil {
		return toolError(err.Error())
	}
	payload := struct {
		Metrics *graph.Metrics `json:"metrics" toon:"metrics"`
		Cycles  []models.Cycle `json:"cycles,omitempty" toon:"cycles,omitempty"`
	}{Metrics: metrics, Cycles: cycles}
	return toolResult(payload)
}
