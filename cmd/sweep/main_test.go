package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/sweeplab/sweep/pkg/config"
	"github.com/sweeplab/sweep/pkg/models"
)

// TestGetPath verifies project root handling from CLI arguments.
func TestGetPath(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "no args defaults to current dir",
			args:     []string{},
			expected: ".",
		},
		{
			name:     "single path",
			args:     []string{"/foo/bar"},
			expected: "/foo/bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &cli.App{
				Action: func(c *cli.Context) error {
					if got := getPath(c); got != tt.expected {
						t.Errorf("getPath() = %q, want %q", got, tt.expected)
					}
					return nil
				},
			}
			if err := app.Run(append([]string{"sweep"}, tt.args...)); err != nil {
				t.Fatalf("app.Run() error = %v", err)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in       int64
		expected string
	}{
		{0, "-"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.expected {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

// TestGenerateDefaultConfig verifies the generated file round-trips
// through the config loader.
func TestGenerateDefaultConfig(t *testing.T) {
	content, err := generateDefaultConfig()
	if err != nil {
		t.Fatalf("generateDefaultConfig() error = %v", err)
	}
	if !strings.HasPrefix(content, "# Sweep CLI Configuration") {
		t.Errorf("generated config missing header comment")
	}

	path := filepath.Join(t.TempDir(), "sweep.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	def := config.Default()
	if cfg.Thresholds.AssetCriticalRatio != def.Thresholds.AssetCriticalRatio {
		t.Errorf("asset_critical_ratio = %v, want %v", cfg.Thresholds.AssetCriticalRatio, def.Thresholds.AssetCriticalRatio)
	}
	if len(cfg.Allowlist.Functions) != len(def.Allowlist.Functions) {
		t.Errorf("allowlist functions = %d entries, want %d", len(cfg.Allowlist.Functions), len(def.Allowlist.Functions))
	}
}

func TestItemRows(t *testing.T) {
	items := []models.UnusedItem{
		{Name: "helper", Path: "lib/a.dart", Line: 12, Description: "no references"},
		{Name: "logo.png", Path: "assets/logo.png", Size: 2048, Description: "never referenced"},
	}
	rows := itemRows(items)
	if len(rows) != 2 {
		t.Fatalf("itemRows() returned %d rows, want 2", len(rows))
	}
	if rows[0][2] != "12" {
		t.Errorf("line column = %q, want %q", rows[0][2], "12")
	}
	if rows[1][2] != "-" {
		t.Errorf("missing line column = %q, want %q", rows[1][2], "-")
	}
	if rows[1][3] != "2.0 KB" {
		t.Errorf("size column = %q, want %q", rows[1][3], "2.0 KB")
	}
}

func TestJoinCycle(t *testing.T) {
	cycle := models.Cycle{"lib/a.dart", "lib/b.dart", "lib/a.dart"}
	got := joinCycle(cycle)
	want := "lib/a.dart -> lib/b.dart -> lib/a.dart"
	if got != want {
		t.Errorf("joinCycle() = %q, want %q", got, want)
	}
}
