package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sweeplab/sweep/pkg/models"
)

const samplePubspec = `name: demo_app
description: A demo.

dependencies:
  flutter:
    sdk: flutter
  http: ^1.2.0
  local_thing:
    path: ../local_thing

dev_dependencies:
  flutter_test:
    sdk: flutter
  build_runner: ^2.4.0

flutter:
  assets:
    - assets/logo.png
    - assets/images/
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(samplePubspec))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if m.Name != "demo_app" {
		t.Errorf("Name = %q, want demo_app", m.Name)
	}
	if len(m.Dependencies) != 3 {
		t.Errorf("Dependencies = %d, want 3", len(m.Dependencies))
	}
	if len(m.Flutter.Assets) != 2 {
		t.Errorf("Flutter.Assets = %d, want 2", len(m.Flutter.Assets))
	}
}

func TestParseRejectsNameless(t *testing.T) {
	if _, err := Parse([]byte("description: nope\n")); err == nil {
		t.Fatal("Parse() accepted a manifest without a name")
	}
}

func TestDeclaredPackages(t *testing.T) {
	m, err := Parse([]byte(samplePubspec))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	pkgs := m.DeclaredPackages()
	if len(pkgs) != 5 {
		t.Fatalf("DeclaredPackages() = %d entries, want 5", len(pkgs))
	}

	byName := make(map[string]models.PackageDependency)
	for _, p := range pkgs {
		byName[p.Name] = p
	}

	if got := byName["http"]; got.Kind != models.DependencyRuntime || got.Version != "^1.2.0" {
		t.Errorf("http = %+v, want runtime ^1.2.0", got)
	}
	if got := byName["flutter"]; got.Version != "sdk: flutter" {
		t.Errorf("flutter version = %q, want sdk: flutter", got.Version)
	}
	if got := byName["build_runner"]; got.Kind != models.DependencyDev {
		t.Errorf("build_runner kind = %q, want dev", got.Kind)
	}
	if got := byName["local_thing"]; got.Version != "path: ../local_thing" {
		t.Errorf("local_thing version = %q", got.Version)
	}
}

func TestDeclaredAssetsExpandsDirectories(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{
		"assets/logo.png",
		"assets/images/a.png",
		"assets/images/deep/b.png",
	} {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	m, err := Parse([]byte(samplePubspec))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	assets := m.DeclaredAssets(root)
	want := map[string]bool{
		"assets/logo.png":          true,
		"assets/images/a.png":      true,
		"assets/images/deep/b.png": true,
	}
	if len(assets) != len(want) {
		t.Fatalf("DeclaredAssets() = %v, want %d entries", assets, len(want))
	}
	for _, a := range assets {
		if !want[a] {
			t.Errorf("unexpected asset %q", a)
		}
	}
}

func TestDeclaredAssetsKeepsMissingEntries(t *testing.T) {
	m, err := Parse([]byte(samplePubspec))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	// Root without any of the declared files. Entries stay declared so the
	// allowlist still protects them.
	assets := m.DeclaredAssets(t.TempDir())
	if len(assets) != 2 {
		t.Fatalf("DeclaredAssets() = %v, want both entries kept", assets)
	}
}
