package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/sweeplab/sweep/internal/analyzer"
	"github.com/sweeplab/sweep/internal/progress"
	"github.com/sweeplab/sweep/pkg/models"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"all"},
		Usage:     "Run all analyzers: files, functions, assets, and packages",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "fail-on-critical",
				Usage: "Exit with a non-zero status when a critical warning is raised",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Additional glob patterns to exclude from scanning",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	root := getPath(c)
	cfg, err := loadConfig(c, root)
	if err != nil {
		return err
	}
	cfg.Exclude.Patterns = append(cfg.Exclude.Patterns, c.StringSlice("exclude")...)

	tracker := progress.NewSpinner("Analyzing project...")
	a, err := buildAnalyzer(c, root, cfg, tracker.Tick)
	if err != nil {
		return err
	}

	result, err := a.AnalyzeProject(root)
	if err != nil {
		tracker.FinishError(err)
		return fmt.Errorf("analysis failed: %w", err)
	}
	tracker.FinishSuccess()

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if err := renderResult(formatter, result); err != nil {
		return err
	}

	if c.Bool("fail-on-critical") && result.HasCritical() {
		return fmt.Errorf("critical safety warnings raised; review before removing anything")
	}
	return nil
}

func filesCmd() *cli.Command {
	return &cli.Command{
		Name:      "files",
		Usage:     "Report source files unreachable from any entry point",
		ArgsUsage: "[path]",
		Action: func(c *cli.Context) error {
			return runDomainCmd(c, "Unused Files", (*analyzer.Analyzer).AnalyzeFiles,
				func(r *models.AnalysisResult) []models.UnusedItem { return r.UnusedFiles })
		},
	}
}

func functionsCmd() *cli.Command {
	return &cli.Command{
		Name:      "functions",
		Aliases:   []string{"fns"},
		Usage:     "Report declared functions, methods, and constructors with no references",
		ArgsUsage: "[path]",
		Action: func(c *cli.Context) error {
			return runDomainCmd(c, "Unused Functions", (*analyzer.Analyzer).AnalyzeFunctions,
				func(r *models.AnalysisResult) []models.UnusedItem { return r.UnusedFunctions })
		},
	}
}

func assetsCmd() *cli.Command {
	return &cli.Command{
		Name:      "assets",
		Usage:     "Report asset files never referenced from Dart code or pubspec.yaml",
		ArgsUsage: "[path]",
		Action: func(c *cli.Context) error {
			return runDomainCmd(c, "Unused Assets", (*analyzer.Analyzer).AnalyzeAssets,
				func(r *models.AnalysisResult) []models.UnusedItem { return r.UnusedAssets })
		},
	}
}

func packagesCmd() *cli.Command {
	return &cli.Command{
		Name:      "packages",
		Aliases:   []string{"pkgs"},
		Usage:     "Report pubspec dependencies never imported",
		ArgsUsage: "[path]",
		Action: func(c *cli.Context) error {
			return runDomainCmd(c, "Unused Packages", (*analyzer.Analyzer).AnalyzePackages,
				func(r *models.AnalysisResult) []models.UnusedItem { return r.UnusedPackages })
		},
	}
}

func runDomainCmd(c *cli.Context, title string, analyze func(*analyzer.Analyzer, string) (*models.AnalysisResult, error), pick func(*models.AnalysisResult) []models.UnusedItem) error {
	root := getPath(c)
	cfg, err := loadConfig(c, root)
	if err != nil {
		return err
	}

	tracker := progress.NewSpinner("Analyzing project...")
	a, err := buildAnalyzer(c, root, cfg, tracker.Tick)
	if err != nil {
		return err
	}

	result, err := analyze(a, root)
	if err != nil {
		tracker.FinishError(err)
		return fmt.Errorf("analysis failed: %w", err)
	}
	tracker.FinishSuccess()

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return renderDomain(formatter, title, pick(result), result)
}
