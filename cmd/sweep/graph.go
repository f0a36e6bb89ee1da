package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/sweeplab/sweep/internal/graph"
	"github.com/sweeplab/sweep/internal/output"
	"github.com/sweeplab/sweep/internal/progress"
	"github.com/sweeplab/sweep/pkg/models"
)

func graphCmd() *cli.Command {
	return &cli.Command{
		Name:      "graph",
		Aliases:   []string{"dag"},
		Usage:     "Show dependency graph metrics and import cycles",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: 20,
				Usage: "Number of files to show, ranked by PageRank",
			},
		},
		Action: runGraphCmd,
	}
}

func runGraphCmd(c *cli.Context) error {
	root := getPath(c)
	top := c.Int("top")

	cfg, err := loadConfig(c, root)
	if err != nil {
		return err
	}

	tracker := progress.NewSpinner("Building dependency graph...")
	a, err := buildAnalyzer(c, root, cfg, tracker.Tick)
	if err != nil {
		return err
	}

	metrics, cycles, err := a.GraphMetrics(root)
	if err != nil {
		tracker.FinishError(err)
		return fmt.Errorf("graph analysis failed: %w", err)
	}
	tracker.FinishSuccess()

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	payload := struct {
		Metrics *graph.Metrics `json:"metrics" toon:"metrics"`
		Cycles  []models.Cycle `json:"cycles,omitempty" toon:"cycles,omitempty"`
	}{metrics, cycles}

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(payload)
	}

	nodes := metrics.NodeMetrics
	if top > 0 && len(nodes) > top {
		nodes = nodes[:top]
	}
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{
			n.Path,
			fmt.Sprintf("%.4f", n.PageRank),
			fmt.Sprintf("%d", n.InDegree),
			fmt.Sprintf("%d", n.OutDegree),
		})
	}

	table := output.NewTable(
		"Dependency Graph",
		[]string{"File", "PageRank", "In", "Out"},
		rows,
		[]string{
			fmt.Sprintf("Nodes: %d", metrics.Nodes),
			fmt.Sprintf("Edges: %d", metrics.Edges),
			fmt.Sprintf("Components: %d", metrics.Components),
			fmt.Sprintf("Cyclic groups: %d", metrics.CyclicGroups),
		},
		payload,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	if len(cycles) > 0 && formatter.Format() == output.FormatText {
		fmt.Println()
		color.Yellow("Import cycles (%d):", len(cycles))
		for _, cycle := range cycles {
			fmt.Printf("  - %s\n", joinCycle(cycle))
		}
	}
	return nil
}

func joinCycle(c models.Cycle) string {
	out := ""
	for i, p := range c {
		if i > 0 {
			out += " -> "
		}
		out += p
	}
	return out
}
