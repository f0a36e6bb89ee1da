// Package scanner walks a Flutter project tree and classifies the files
// the analyzer cares about.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/gobwas/glob"
	"github.com/sweeplab/sweep/pkg/config"
)

// Result holds the files discovered under a project root. Paths are
// relative to the root and use forward slashes.
type Result struct {
	// Dart lists every Dart source file, including generated and test
	// files. Protection happens downstream, not here.
	Dart []string
	// Other lists every remaining regular file, the pool asset
	// candidates are drawn from.
	Other []string
}

// Scanner finds project files, honoring gitignore rules, user exclusion
// globs and the built-in directory skip list.
type Scanner struct {
	config    *config.Config
	matchers  []gitignore.Matcher
	patterns  []glob.Glob
	protected []glob.Glob
	skipDirs  map[string]bool
}

// New creates a scanner from cfg. A nil cfg uses defaults.
func New(cfg *config.Config) (*Scanner, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Scanner{
		config:   cfg,
		skipDirs: make(map[string]bool, len(cfg.Exclude.Dirs)),
	}
	for _, d := range cfg.Exclude.Dirs {
		s.skipDirs[d] = true
	}

	for _, p := range cfg.Exclude.Patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		s.patterns = append(s.patterns, g)
	}
	for _, p := range cfg.Allowlist.ProtectedPatterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("protected pattern %q: %w", p, err)
		}
		s.protected = append(s.protected, g)
	}

	return s, nil
}

// findGitRoot walks upward from start looking for a .git directory.
// Returns empty string when not inside a repository.
func findGitRoot(start string) string {
	dir := start
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadGitignore reads all .gitignore files reachable from the enclosing
// git root, when gitignore handling is enabled.
func (s *Scanner) loadGitignore(root string) {
	if !s.config.Exclude.Gitignore {
		return
	}
	gitRoot := findGitRoot(root)
	if gitRoot == "" {
		return
	}
	bfs := osfs.New(gitRoot)
	if patterns, err := gitignore.ReadPatterns(bfs, nil); err == nil && len(patterns) > 0 {
		s.matchers = append(s.matchers, gitignore.NewMatcher(patterns))
	}
}

// isExcluded reports whether relPath matches a gitignore rule or a user
// exclusion glob.
func (s *Scanner) isExcluded(relPath string, isDir bool) bool {
	if len(s.matchers) > 0 {
		parts := strings.Split(relPath, "/")
		for _, m := range s.matchers {
			if m.Match(parts, isDir) {
				return true
			}
		}
	}
	for _, g := range s.patterns {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

// IsProtected reports whether relPath matches the allowlist's protected
// patterns. Protected files are scanned and parsed but never reported
// unused.
func (s *Scanner) IsProtected(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, g := range s.protected {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

// Scan recursively walks root and classifies every regular file.
// Symlinks that escape the root are skipped.
func (s *Scanner) Scan(root string) (*Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, err
	}

	s.loadGitignore(root)

	res := &Result{
		Dart:  make([]string, 0, 256),
		Other: make([]string, 0, 256),
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}

		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)

		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithinRoot(resolved, absRoot) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			if s.skipDirs[d.Name()] || s.isExcluded(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isExcluded(rel, false) {
			return nil
		}
		if strings.HasSuffix(path, ".dart") {
			res.Dart = append(res.Dart, rel)
		} else {
			res.Other = append(res.Other, rel)
		}
		return nil
	})

	return res, walkErr
}

// isWithinRoot reports whether path is contained in root after
// normalization. Guards against symlink traversal out of the project.
func isWithinRoot(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)
	return absPath == root || strings.HasPrefix(absPath, root+string(filepath.Separator))
}

// ValidationError describes why a directory cannot be analyzed.
type ValidationError struct {
	Root   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Root, e.Reason)
}

// ValidateProject checks that root looks like a Dart or Flutter project
// the analyzer can work on.
func ValidateProject(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return &ValidationError{Root: root, Reason: "directory does not exist"}
	}
	if !info.IsDir() {
		return &ValidationError{Root: root, Reason: "not a directory"}
	}
	if _, err := os.Stat(filepath.Join(root, "pubspec.yaml")); err != nil {
		return &ValidationError{Root: root, Reason: "pubspec.yaml not found"}
	}

	for _, dir := range []string{"lib", "bin"} {
		if info, err := os.Stat(filepath.Join(root, dir)); err == nil && info.IsDir() {
			return nil
		}
	}
	return &ValidationError{Root: root, Reason: "no lib/ or bin/ source directory"}
}

// assetExtensions are file types treated as asset candidates even when
// they live outside a declared asset directory.
var assetExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".svg": true, ".bmp": true, ".ico": true,
	".ttf": true, ".otf": true, ".woff": true, ".woff2": true,
	".mp3": true, ".wav": true, ".ogg": true, ".mp4": true, ".webm": true,
	".json": true, ".riv": true, ".lottie": true, ".pdf": true,
}

// AssetCandidates filters scanned non-Dart files down to asset files:
// anything under one of the declared asset roots, plus files elsewhere
// whose extension marks them as a bundled resource. pubspec.yaml and
// other project metadata never qualify.
func AssetCandidates(files []string, assetRoots []string) []string {
	roots := make([]string, 0, len(assetRoots))
	for _, r := range assetRoots {
		roots = append(roots, strings.TrimSuffix(filepath.ToSlash(r), "/")+"/")
	}

	var out []string
	for _, f := range files {
		f = filepath.ToSlash(f)
		underRoot := false
		for _, r := range roots {
			if strings.HasPrefix(f, r) {
				underRoot = true
				break
			}
		}
		if underRoot {
			out = append(out, f)
			continue
		}
		if assetExtensions[strings.ToLower(filepath.Ext(f))] && !strings.Contains(f, "/.") {
			base := filepath.Base(f)
			if base == "pubspec.yaml" || base == "pubspec.lock" || base == "analysis_options.yaml" {
				continue
			}
			out = append(out, f)
		}
	}
	return out
}
