package analyzer

import (
	"os"
	"path/filepath"

	"github.com/sweeplab/sweep/pkg/models"
)

// unusedFiles reports Dart files not reachable from any entry point.
// Protected paths (generated code, platform directories) are exempt.
func (a *Analyzer) unusedFiles(p *project) []models.UnusedItem {
	var items []models.UnusedItem

	for _, rel := range p.dartFiles {
		if p.reachable[rel] || p.roots[rel] {
			continue
		}
		if p.scan.IsProtected(rel) {
			continue
		}

		var size int64
		if info, err := os.Stat(filepath.Join(p.root, filepath.FromSlash(rel))); err == nil {
			size = info.Size()
		}

		items = append(items, models.UnusedItem{
			Name:        filepath.Base(rel),
			Path:        rel,
			Category:    models.CategoryFile,
			Size:        size,
			Description: "not reachable from any entry point",
		})
	}
	return items
}
