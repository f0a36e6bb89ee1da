package analyzer

import (
	"fmt"
	"strings"

	"github.com/sweeplab/sweep/pkg/models"
)

// unusedPackages reports manifest dependencies never imported by any
// scanned source file. Essential packages (framework, lints, tooling)
// are allowlisted because they are used without imports.
func (a *Analyzer) unusedPackages(p *project) []models.UnusedItem {
	essential := make(map[string]bool, len(a.cfg.Allowlist.Packages))
	for _, n := range a.cfg.Allowlist.Packages {
		essential[n] = true
	}

	imported := make(map[string]bool)
	for _, unit := range p.units {
		for _, dir := range unit.Directives {
			targets := append([]string{dir.Target}, dir.Conditional...)
			for _, t := range targets {
				if name, ok := packageOf(t); ok {
					imported[name] = true
				}
			}
		}
	}

	var items []models.UnusedItem
	for _, dep := range p.man.DeclaredPackages() {
		if dep.Name == p.man.Name || essential[dep.Name] || imported[dep.Name] {
			continue
		}
		items = append(items, models.UnusedItem{
			Name:        dep.Name,
			Path:        "pubspec.yaml",
			Category:    models.CategoryPackage,
			Description: fmt.Sprintf("%s dependency '%s' is never imported", dep.Kind, dep.Name),
		})
	}
	return items
}

// packageOf extracts the package name from a package-scheme import URI.
func packageOf(target string) (string, bool) {
	rest, ok := strings.CutPrefix(target, "package:")
	if !ok {
		return "", false
	}
	if name, _, found := strings.Cut(rest, "/"); found && name != "" {
		return name, true
	}
	return rest, rest != ""
}
