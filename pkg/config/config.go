// Package config loads sweep configuration from TOML, YAML or JSON files
// with sensible Flutter-oriented defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the root configuration for an analysis run.
type Config struct {
	Project    ProjectConfig   `koanf:"project" json:"project" toml:"project"`
	Thresholds ThresholdConfig `koanf:"thresholds" json:"thresholds" toml:"thresholds"`
	Exclude    ExcludeConfig   `koanf:"exclude" json:"exclude" toml:"exclude"`
	Allowlist  AllowlistConfig `koanf:"allowlist" json:"allowlist" toml:"allowlist"`
	Cache      CacheConfig     `koanf:"cache" json:"cache" toml:"cache"`
	Output     OutputConfig    `koanf:"output" json:"output" toml:"output"`
}

// ProjectConfig controls how entry points are discovered.
type ProjectConfig struct {
	// EntryPoints are glob patterns, relative to the project root, that
	// mark files as analysis roots in addition to the built-in rules.
	EntryPoints []string `koanf:"entry_points" json:"entry_points" toml:"entry_points"`
	// TestDirs are directories whose files are treated as roots so test
	// helpers are never reported unused.
	TestDirs []string `koanf:"test_dirs" json:"test_dirs" toml:"test_dirs"`
	// ExampleDirs are treated the same way as TestDirs.
	ExampleDirs []string `koanf:"example_dirs" json:"example_dirs" toml:"example_dirs"`
}

// ThresholdConfig holds the safety-gate ratios and counts.
type ThresholdConfig struct {
	// AssetCriticalRatio escalates to critical when the share of unused
	// assets among all assets exceeds it.
	AssetCriticalRatio float64 `koanf:"asset_critical_ratio" json:"asset_critical_ratio" toml:"asset_critical_ratio"`
	// TotalCriticalRatio escalates when unused items across all domains
	// exceed this share of scanned items.
	TotalCriticalRatio float64 `koanf:"total_critical_ratio" json:"total_critical_ratio" toml:"total_critical_ratio"`
	// DomainCautionCount triggers a caution when any single domain
	// reports more than this many unused items.
	DomainCautionCount int `koanf:"domain_caution_count" json:"domain_caution_count" toml:"domain_caution_count"`
}

// ExcludeConfig narrows the set of files the scanner visits.
type ExcludeConfig struct {
	// Patterns are glob patterns matched against paths relative to the
	// project root.
	Patterns []string `koanf:"patterns" json:"patterns" toml:"patterns"`
	// Dirs are directory basenames skipped wherever they appear.
	Dirs []string `koanf:"dirs" json:"dirs" toml:"dirs"`
	// Gitignore enables .gitignore-aware skipping.
	Gitignore bool `koanf:"gitignore" json:"gitignore" toml:"gitignore"`
}

// AllowlistConfig lists names and paths that are never reported unused.
type AllowlistConfig struct {
	Functions         []string `koanf:"functions" json:"functions" toml:"functions"`
	FunctionPrefixes  []string `koanf:"function_prefixes" json:"function_prefixes" toml:"function_prefixes"`
	Packages          []string `koanf:"packages" json:"packages" toml:"packages"`
	ProtectedPatterns []string `koanf:"protected_patterns" json:"protected_patterns" toml:"protected_patterns"`
}

// CacheConfig controls the on-disk parse cache.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" json:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" json:"dir" toml:"dir"`
	// TTL is the cache entry lifetime in hours.
	TTL int `koanf:"ttl" json:"ttl" toml:"ttl"`
}

// OutputConfig sets the default render format.
type OutputConfig struct {
	Format string `koanf:"format" json:"format" toml:"format"`
	Color  bool   `koanf:"color" json:"color" toml:"color"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			EntryPoints: []string{"lib/main.dart", "bin/*.dart"},
			TestDirs:    []string{"test", "integration_test"},
			ExampleDirs: []string{"example", "examples", "demo"},
		},
		Thresholds: ThresholdConfig{
			AssetCriticalRatio: 0.75,
			TotalCriticalRatio: 0.30,
			DomainCautionCount: 10,
		},
		Exclude: ExcludeConfig{
			Dirs:      []string{".git", ".dart_tool", ".sweep", "build", ".idea", ".vscode"},
			Gitignore: true,
		},
		Allowlist: AllowlistConfig{
			Functions: []string{
				"main", "initState", "dispose", "build", "createState",
				"createElement", "setState", "didChangeDependencies",
				"didUpdateWidget", "deactivate", "activate", "reassemble",
				"debugFillProperties", "toString", "noSuchMethod",
				"toJson", "fromJson",
			},
			FunctionPrefixes: []string{"_$", "operator"},
			Packages: []string{
				"flutter", "flutter_test", "flutter_lints",
				"flutter_localizations", "flutter_driver",
				"integration_test", "cupertino_icons",
			},
			ProtectedPatterns: []string{
				"**/*.g.dart", "**/*.freezed.dart", "**/*.gr.dart",
				"**/*.mocks.dart", "**/generated_plugin_registrant.dart",
				"android/**", "ios/**", "web/**", "windows/**",
				"macos/**", "linux/**", ".sweep_backup/**",
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     filepath.Join(".sweep", "cache"),
			TTL:     24,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load reads the configuration file at path, layering it over defaults.
// The parser is selected by file extension; unknown extensions are
// treated as TOML.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// searchNames are the file names probed by LoadOrDefault, in order.
var searchNames = []string{
	"sweep.toml", "sweep.yaml", "sweep.yml", "sweep.json",
	".sweep.toml", ".sweep.yaml", ".sweep.yml", ".sweep.json",
}

// LoadOrDefault looks for a config file in dir and dir/.sweep and loads
// the first one found. It returns defaults when none exists.
func LoadOrDefault(dir string) (*Config, error) {
	for _, sub := range []string{"", ".sweep"} {
		for _, name := range searchNames {
			path := filepath.Join(dir, sub, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return Load(path)
			}
		}
	}
	return Default(), nil
}
