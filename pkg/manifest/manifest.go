// Package manifest reads pubspec.yaml, the Dart/Flutter project manifest.
package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sweeplab/sweep/pkg/models"
	"gopkg.in/yaml.v3"
)

// Filename is the conventional manifest name at the project root.
const Filename = "pubspec.yaml"

// Manifest is the parsed project manifest. Read once per run, never mutated.
type Manifest struct {
	Name            string         `yaml:"name"`
	Dependencies    map[string]any `yaml:"dependencies"`
	DevDependencies map[string]any `yaml:"dev_dependencies"`
	Flutter         struct {
		Assets []string `yaml:"assets"`
	} `yaml:"flutter"`
}

// Load reads and parses the manifest at the given path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("manifest has no package name")
	}
	return &m, nil
}

// DeclaredPackages returns all manifest dependencies as flat entries.
// Runtime dependencies come first, then dev dependencies.
func (m *Manifest) DeclaredPackages() []models.PackageDependency {
	pkgs := make([]models.PackageDependency, 0, len(m.Dependencies)+len(m.DevDependencies))
	for name, v := range m.Dependencies {
		pkgs = append(pkgs, models.PackageDependency{
			Name:    name,
			Kind:    models.DependencyRuntime,
			Version: versionString(v),
		})
	}
	for name, v := range m.DevDependencies {
		pkgs = append(pkgs, models.PackageDependency{
			Name:    name,
			Kind:    models.DependencyDev,
			Version: versionString(v),
		})
	}
	return pkgs
}

// versionString renders a dependency constraint. Values are either plain
// strings ("^1.2.0") or maps (sdk/git/path dependencies).
func versionString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if sdk, ok := t["sdk"].(string); ok {
			return "sdk: " + sdk
		}
		if _, ok := t["git"]; ok {
			return "git"
		}
		if p, ok := t["path"].(string); ok {
			return "path: " + p
		}
	}
	return ""
}

// DeclaredAssets returns the manifest's asset entries resolved against the
// project root. Directory entries (trailing slash) expand recursively to the
// files they contain at read time. Paths are returned slash-separated and
// relative to root. Missing entries are kept verbatim so they still count as
// declared (the allowlist must protect them even if the file is gone).
func (m *Manifest) DeclaredAssets(root string) []string {
	var assets []string
	for _, entry := range m.Flutter.Assets {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.HasSuffix(entry, "/") {
			assets = append(assets, filepath.ToSlash(filepath.Clean(entry)))
			continue
		}
		dir := filepath.Join(root, filepath.FromSlash(entry))
		expanded := false
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return nil
			}
			assets = append(assets, filepath.ToSlash(rel))
			expanded = true
			return nil
		})
		if !expanded {
			assets = append(assets, filepath.ToSlash(filepath.Clean(entry)))
		}
	}
	return assets
}
