package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/sweeplab/sweep/internal/analyzer"
	"github.com/sweeplab/sweep/internal/cache"
	"github.com/sweeplab/sweep/internal/output"
	"github.com/sweeplab/sweep/pkg/config"
	"github.com/sweeplab/sweep/pkg/models"
)

// getPath returns the project root from the first positional arg,
// defaulting to the current directory.
func getPath(c *cli.Context) string {
	if c.Args().Len() > 0 {
		return c.Args().First()
	}
	return "."
}

func loadConfig(c *cli.Context, root string) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(root)
}

func buildAnalyzer(c *cli.Context, root string, cfg *config.Config, onProgress func()) (*analyzer.Analyzer, error) {
	opts := []analyzer.Option{analyzer.WithConfig(cfg)}

	if cfg.Cache.Enabled && !c.Bool("no-cache") {
		store, err := cache.New(filepath.Join(root, cfg.Cache.Dir), cfg.Cache.TTL, true)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		opts = append(opts, analyzer.WithCache(store))
	}

	if onProgress != nil {
		opts = append(opts, analyzer.WithProgress(onProgress))
	}
	if c.Bool("verbose") {
		opts = append(opts, analyzer.WithDebugLog(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	}

	return analyzer.New(opts...), nil
}

func newFormatter(c *cli.Context) (*output.Formatter, error) {
	return output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	case n > 0:
		return fmt.Sprintf("%d B", n)
	default:
		return "-"
	}
}

func itemRows(items []models.UnusedItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		line := "-"
		if item.Line > 0 {
			line = fmt.Sprintf("%d", item.Line)
		}
		rows = append(rows, []string{
			item.Name,
			item.Path,
			line,
			formatBytes(item.Size),
			item.Description,
		})
	}
	return rows
}

var itemHeaders = []string{"Name", "Path", "Line", "Size", "Description"}

const timeRound = time.Millisecond

func domainTable(title string, items []models.UnusedItem, data any) *output.Table {
	return output.NewTable(
		title,
		itemHeaders,
		itemRows(items),
		[]string{fmt.Sprintf("Unused: %d", len(items))},
		data,
	)
}

// renderResult writes a full analysis result. Structured formats get the
// raw result; text and markdown get per-domain tables plus warnings.
func renderResult(f *output.Formatter, result *models.AnalysisResult) error {
	if f.Format() == output.FormatJSON || f.Format() == output.FormatTOON {
		return f.Output(result)
	}

	report := &output.Report{
		Title: "Sweep Analysis",
		Data:  result,
	}
	if len(result.UnusedFiles) > 0 {
		report.Sections = append(report.Sections, domainTable("Unused Files", result.UnusedFiles, nil))
	}
	if len(result.UnusedFunctions) > 0 {
		report.Sections = append(report.Sections, domainTable("Unused Functions", result.UnusedFunctions, nil))
	}
	if len(result.UnusedAssets) > 0 {
		report.Sections = append(report.Sections, domainTable("Unused Assets", result.UnusedAssets, nil))
	}
	if len(result.UnusedPackages) > 0 {
		report.Sections = append(report.Sections, domainTable("Unused Packages", result.UnusedPackages, nil))
	}

	if err := f.Output(report); err != nil {
		return err
	}

	printWarnings(f, result.Warnings)
	printSummary(f, result)
	return nil
}

// renderDomain writes a single-domain result.
func renderDomain(f *output.Formatter, title string, items []models.UnusedItem, result *models.AnalysisResult) error {
	if f.Format() == output.FormatJSON || f.Format() == output.FormatTOON {
		return f.Output(result)
	}
	if err := f.Output(domainTable(title, items, result)); err != nil {
		return err
	}
	printWarnings(f, result.Warnings)
	return nil
}

func printWarnings(f *output.Formatter, warnings []models.Warning) {
	if len(warnings) == 0 || f.Format() != output.FormatText {
		return
	}
	fmt.Fprintln(f.Writer())
	for _, w := range warnings {
		label := output.SeverityColor(string(w.Severity), fmt.Sprintf("[%s]", w.Severity))
		fmt.Fprintf(f.Writer(), "%s %s\n", label, w.Message)
	}
}

func printSummary(f *output.Formatter, result *models.AnalysisResult) {
	if f.Format() != output.FormatText {
		return
	}
	fmt.Fprintln(f.Writer())
	if !result.HasUnusedItems() {
		color.Green("No unused items found (%d files, %d assets scanned in %s)",
			result.Stats.TotalFiles, result.Stats.TotalAssetFiles, result.Stats.Elapsed.Round(timeRound))
		return
	}
	fmt.Fprintf(f.Writer(), "Total unused: %d (files: %d, functions: %d, assets: %d, packages: %d) in %s\n",
		result.TotalUnusedItems(),
		len(result.UnusedFiles),
		len(result.UnusedFunctions),
		len(result.UnusedAssets),
		len(result.UnusedPackages),
		result.Stats.Elapsed.Round(timeRound))
}
