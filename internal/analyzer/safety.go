package analyzer

import (
	"fmt"

	"github.com/sweeplab/sweep/pkg/config"
	"github.com/sweeplab/sweep/pkg/models"
)

// Validate applies the safety thresholds to a result and returns the
// advisory warnings. It is a pure function over counts; blocking a
// destructive action on a warning is the caller's decision.
func Validate(r *models.AnalysisResult, t config.ThresholdConfig) []models.Warning {
	var warnings []models.Warning

	if r.Stats.TotalAssetFiles > 0 {
		ratio := float64(len(r.UnusedAssets)) / float64(r.Stats.TotalAssetFiles)
		if ratio > t.AssetCriticalRatio {
			warnings = append(warnings, models.Warning{
				Severity: models.SeverityCritical,
				Message: fmt.Sprintf(
					"%d of %d asset files (%.0f%%) flagged unused, above the %.0f%% threshold; verify asset references before deleting anything",
					len(r.UnusedAssets), r.Stats.TotalAssetFiles, ratio*100, t.AssetCriticalRatio*100),
			})
		}
	}

	totalScanned := r.Stats.TotalFiles + r.Stats.TotalAssetFiles
	if totalScanned > 0 {
		ratio := float64(r.TotalUnusedItems()) / float64(totalScanned)
		if ratio > t.TotalCriticalRatio {
			warnings = append(warnings, models.Warning{
				Severity: models.SeverityCritical,
				Message: fmt.Sprintf(
					"%d of %d scanned items (%.0f%%) flagged unused (files: %d, functions: %d, assets: %d, packages: %d); results this large usually mean dynamic references, generated code or platform-specific code the scan cannot see",
					r.TotalUnusedItems(), totalScanned, ratio*100,
					len(r.UnusedFiles), len(r.UnusedFunctions), len(r.UnusedAssets), len(r.UnusedPackages)),
			})
		}
	}

	domains := []struct {
		name  string
		count int
	}{
		{"file", len(r.UnusedFiles)},
		{"function", len(r.UnusedFunctions)},
		{"asset", len(r.UnusedAssets)},
		{"package", len(r.UnusedPackages)},
	}
	for _, d := range domains {
		if d.count > t.DomainCautionCount {
			warnings = append(warnings, models.Warning{
				Severity: models.SeverityCaution,
				Message: fmt.Sprintf(
					"%d unused %s items found; review the list before bulk removal",
					d.count, d.name),
			})
		}
	}

	return warnings
}
