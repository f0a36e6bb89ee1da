package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sweeplab/sweep/pkg/config"
)

func writeFile(t *testing.T, root, rel string, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newScanner(t *testing.T, cfg *config.Config) *Scanner {
	t.Helper()
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func TestScanClassifiesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pubspec.yaml", "name: demo\n")
	writeFile(t, dir, "lib/main.dart", "void main() {}\n")
	writeFile(t, dir, "lib/src/util.dart", "int f() => 1;\n")
	writeFile(t, dir, "assets/logo.png", "png")

	res, err := newScanner(t, nil).Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if !contains(res.Dart, "lib/main.dart") || !contains(res.Dart, "lib/src/util.dart") {
		t.Errorf("dart files = %v", res.Dart)
	}
	if !contains(res.Other, "assets/logo.png") {
		t.Errorf("other files = %v", res.Other)
	}
	if contains(res.Other, "lib/main.dart") {
		t.Error("dart file leaked into Other")
	}
}

func TestScanSkipsBuiltinDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pubspec.yaml", "name: demo\n")
	writeFile(t, dir, "lib/main.dart", "void main() {}\n")
	writeFile(t, dir, "build/gen.dart", "void g() {}\n")
	writeFile(t, dir, ".dart_tool/package_config.json", "{}")

	res, err := newScanner(t, nil).Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if contains(res.Dart, "build/gen.dart") {
		t.Error("build/ should be skipped")
	}
	for _, f := range res.Other {
		if filepath.ToSlash(f) == ".dart_tool/package_config.json" {
			t.Error(".dart_tool/ should be skipped")
		}
	}
}

func TestScanHonorsUserPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib/main.dart", "void main() {}\n")
	writeFile(t, dir, "lib/legacy/old.dart", "void old() {}\n")

	cfg := config.Default()
	cfg.Exclude.Patterns = []string{"lib/legacy/**"}
	res, err := newScanner(t, cfg).Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if contains(res.Dart, "lib/legacy/old.dart") {
		t.Error("user exclusion pattern was ignored")
	}
	if !contains(res.Dart, "lib/main.dart") {
		t.Error("non-excluded file missing")
	}
}

func TestScanHonorsGitignore(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, ".gitignore", "generated/\n")
	writeFile(t, dir, "lib/main.dart", "void main() {}\n")
	writeFile(t, dir, "generated/out.dart", "void o() {}\n")

	res, err := newScanner(t, nil).Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if contains(res.Dart, "generated/out.dart") {
		t.Error("gitignored directory was scanned")
	}
}

func TestIsProtected(t *testing.T) {
	s := newScanner(t, nil)

	tests := []struct {
		path string
		want bool
	}{
		{"lib/models/user.g.dart", true},
		{"lib/models/user.freezed.dart", true},
		{"android/app/build.gradle", true},
		{"ios/Runner/Info.plist", true},
		{"lib/screens/home.dart", false},
		{"assets/logo.png", false},
	}
	for _, tt := range tests {
		if got := s.IsProtected(tt.path); got != tt.want {
			t.Errorf("IsProtected(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestValidateProject(t *testing.T) {
	dir := t.TempDir()
	if err := ValidateProject(dir); err == nil {
		t.Error("empty directory should not validate")
	}

	writeFile(t, dir, "pubspec.yaml", "name: demo\n")
	if err := ValidateProject(dir); err == nil {
		t.Error("manifest without source dirs should not validate")
	}

	writeFile(t, dir, "lib/main.dart", "void main() {}\n")
	if err := ValidateProject(dir); err != nil {
		t.Errorf("ValidateProject: %v", err)
	}
}

func TestAssetCandidates(t *testing.T) {
	files := []string{
		"assets/images/logo.png",
		"assets/data/config.json",
		"fonts/custom.ttf",
		"README.md",
		"pubspec.lock",
		"docs/diagram.png",
	}

	got := AssetCandidates(files, []string{"assets/"})

	if !contains(got, "assets/images/logo.png") || !contains(got, "assets/data/config.json") {
		t.Errorf("declared-root assets missing: %v", got)
	}
	if !contains(got, "fonts/custom.ttf") || !contains(got, "docs/diagram.png") {
		t.Errorf("extension-matched assets missing: %v", got)
	}
	if contains(got, "README.md") || contains(got, "pubspec.lock") {
		t.Errorf("non-assets included: %v", got)
	}
}
