package analyzer

import (
	"sort"

	"github.com/sweeplab/sweep/pkg/models"
)

// Aggregate merges the per-domain results into one AnalysisResult. Item
// lists are sorted so repeated runs over an unmodified project produce
// identical output.
func Aggregate(assets, functions, packages, files []models.UnusedItem, cycles []models.Cycle, stats models.ScanStats) *models.AnalysisResult {
	sortItems(assets)
	sortItems(functions)
	sortItems(packages)
	sortItems(files)

	return &models.AnalysisResult{
		UnusedAssets:    assets,
		UnusedFunctions: functions,
		UnusedPackages:  packages,
		UnusedFiles:     files,
		Cycles:          cycles,
		Stats:           stats,
	}
}

func sortItems(items []models.UnusedItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Path != items[j].Path {
			return items[i].Path < items[j].Path
		}
		if items[i].Line != items[j].Line {
			return items[i].Line < items[j].Line
		}
		return items[i].Name < items[j].Name
	})
}
