package analyzer

import (
	"fmt"
	"strings"

	"github.com/sweeplab/sweep/pkg/models"
)

// unusedFunctions reports declared functions, methods and constructors
// whose names appear in no reference set of any scanned unit. Lifecycle
// methods and generated-code patterns are allowlisted; the check is
// conservative on purpose because public API usage may originate outside
// the scanned units.
func (a *Analyzer) unusedFunctions(p *project) []models.UnusedItem {
	allowed := make(map[string]bool, len(a.cfg.Allowlist.Functions))
	for _, n := range a.cfg.Allowlist.Functions {
		allowed[n] = true
	}

	used := collectReferencedNames(p.units)

	var items []models.UnusedItem
	for rel, unit := range p.units {
		if p.scan.IsProtected(rel) {
			continue
		}

		for _, decl := range unit.Declarations {
			switch decl.Kind {
			case models.DeclFunction, models.DeclMethod, models.DeclConstructor:
			default:
				continue
			}
			if allowed[decl.Name] || hasAllowedPrefix(decl.Name, a.cfg.Allowlist.FunctionPrefixes) {
				continue
			}
			if used[decl.Name] {
				continue
			}

			items = append(items, models.UnusedItem{
				Name:        decl.Name,
				Path:        rel,
				Category:    models.CategoryFunction,
				Line:        decl.Line,
				Description: describeDecl(decl),
			})
		}
	}
	return items
}

// collectReferencedNames unions reference names across every unit.
// String literals count too: dynamic dispatch by name is common enough
// that a literal mentioning a function name must protect it.
func collectReferencedNames(units map[string]*models.SourceUnit) map[string]bool {
	used := make(map[string]bool)
	for _, unit := range units {
		for _, ref := range unit.References {
			used[ref.Name] = true
		}
	}
	return used
}

func hasAllowedPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func describeDecl(d models.Declaration) string {
	visibility := "public"
	if d.Private {
		visibility = "private"
	}
	return fmt.Sprintf("%s %s '%s' has no references", visibility, d.Kind, d.Name)
}
