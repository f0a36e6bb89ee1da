package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultThresholds(t *testing.T) {
	cfg := Default()
	if cfg.Thresholds.AssetCriticalRatio != 0.75 {
		t.Errorf("asset ratio = %v, want 0.75", cfg.Thresholds.AssetCriticalRatio)
	}
	if cfg.Thresholds.TotalCriticalRatio != 0.30 {
		t.Errorf("total ratio = %v, want 0.30", cfg.Thresholds.TotalCriticalRatio)
	}
	if cfg.Thresholds.DomainCautionCount != 10 {
		t.Errorf("caution count = %d, want 10", cfg.Thresholds.DomainCautionCount)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sweep.toml", `
[thresholds]
domain_caution_count = 25

[output]
format = "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Thresholds.DomainCautionCount != 25 {
		t.Errorf("caution count = %d, want 25", cfg.Thresholds.DomainCautionCount)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Output.Format)
	}
	// Untouched sections keep defaults.
	if cfg.Thresholds.AssetCriticalRatio != 0.75 {
		t.Errorf("asset ratio = %v, want default 0.75", cfg.Thresholds.AssetCriticalRatio)
	}
	if len(cfg.Allowlist.Packages) == 0 {
		t.Error("default package allowlist lost after merge")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sweep.yaml", `
project:
  entry_points:
    - lib/app.dart
exclude:
  gitignore: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Project.EntryPoints) != 1 || cfg.Project.EntryPoints[0] != "lib/app.dart" {
		t.Errorf("entry points = %v", cfg.Project.EntryPoints)
	}
	if cfg.Exclude.Gitignore {
		t.Error("gitignore should be disabled")
	}
}

func TestLoadOrDefaultSearchOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join(".sweep", "sweep.toml"), `
[output]
format = "markdown"
`)

	cfg, err := LoadOrDefault(dir)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Output.Format != "markdown" {
		t.Errorf("format = %q, want markdown", cfg.Output.Format)
	}
}

func TestLoadOrDefaultMissing(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("format = %q, want text default", cfg.Output.Format)
	}
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sweep.toml", `
[thresholds]
asset_critical_ratio = 0.5

[allowlist]
functions = ["main"]
`)

	if err := Validate(path); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sweep.toml", `
[threshholds]
asset_critical_ratio = 0.5
`)

	if err := Validate(path); err == nil {
		t.Error("Validate accepted a misspelled section")
	}
}

func TestValidateRejectsOutOfRangeRatio(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sweep.toml", `
[thresholds]
asset_critical_ratio = 1.5
`)

	if err := Validate(path); err == nil {
		t.Error("Validate accepted a ratio above 1")
	}
}
