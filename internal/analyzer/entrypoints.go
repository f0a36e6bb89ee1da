package analyzer

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/sweeplab/sweep/pkg/config"
	"github.com/sweeplab/sweep/pkg/models"
)

// classifyRoots determines the entry points reachability starts from.
// Rules are additive and classification never fails:
//
//  1. files matching a configured entry-point pattern
//  2. files under a test tree
//  3. files under an example tree
//  4. files declaring a top-level main or re-exporting another library
//  5. files whose parse failed, to fail safe toward keeping them
func classifyRoots(units map[string]*models.SourceUnit, failed map[string]bool, cfg *config.Config) map[string]bool {
	roots := make(map[string]bool)

	var entryGlobs []glob.Glob
	for _, pat := range cfg.Project.EntryPoints {
		if g, err := glob.Compile(pat, '/'); err == nil {
			entryGlobs = append(entryGlobs, g)
		}
	}

	rootDirs := make([]string, 0, len(cfg.Project.TestDirs)+len(cfg.Project.ExampleDirs))
	rootDirs = append(rootDirs, cfg.Project.TestDirs...)
	rootDirs = append(rootDirs, cfg.Project.ExampleDirs...)

	for path, unit := range units {
		switch {
		case matchesAny(entryGlobs, path):
			roots[path] = true
		case underAny(rootDirs, path):
			roots[path] = true
		case unit.HasTopLevel("main"):
			roots[path] = true
		case unit.HasExport():
			roots[path] = true
		}
	}

	for path := range failed {
		roots[path] = true
	}
	return roots
}

func matchesAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

func underAny(dirs []string, path string) bool {
	for _, d := range dirs {
		if strings.HasPrefix(path, d+"/") {
			return true
		}
	}
	return false
}
