package analyzer

import (
	"strings"
	"testing"

	"github.com/sweeplab/sweep/pkg/config"
	"github.com/sweeplab/sweep/pkg/models"
)

func items(n int, cat models.Category) []models.UnusedItem {
	out := make([]models.UnusedItem, n)
	for i := range out {
		out[i] = models.UnusedItem{Category: cat}
	}
	return out
}

func TestValidateAssetRatioCritical(t *testing.T) {
	result := &models.AnalysisResult{
		UnusedAssets: items(8, models.CategoryAsset),
		Stats:        models.ScanStats{TotalFiles: 100, TotalAssetFiles: 10},
	}

	warnings := Validate(result, config.Default().Thresholds)

	found := false
	for _, w := range warnings {
		if w.Severity == models.SeverityCritical && strings.Contains(w.Message, "80%") {
			found = true
		}
	}
	if !found {
		t.Errorf("no critical asset warning in %v", warnings)
	}
}

func TestValidateTotalRatioCritical(t *testing.T) {
	// 20 of 25 scanned items flagged should escalate with the
	// percentage and a per-domain breakdown.
	result := &models.AnalysisResult{
		UnusedFiles:     items(10, models.CategoryFile),
		UnusedFunctions: items(5, models.CategoryFunction),
		UnusedAssets:    items(5, models.CategoryAsset),
		Stats:           models.ScanStats{TotalFiles: 20, TotalAssetFiles: 5},
	}

	warnings := Validate(result, config.Default().Thresholds)

	var critical *models.Warning
	for i := range warnings {
		if warnings[i].Severity == models.SeverityCritical {
			critical = &warnings[i]
		}
	}
	if critical == nil {
		t.Fatalf("no critical warning in %v", warnings)
	}
	if !strings.Contains(critical.Message, "80%") {
		t.Errorf("missing percentage: %q", critical.Message)
	}
	for _, domain := range []string{"files: 10", "functions: 5", "assets: 5", "packages: 0"} {
		if !strings.Contains(critical.Message, domain) {
			t.Errorf("missing domain breakdown %q in %q", domain, critical.Message)
		}
	}
}

func TestValidateDomainCaution(t *testing.T) {
	result := &models.AnalysisResult{
		UnusedFunctions: items(11, models.CategoryFunction),
		Stats:           models.ScanStats{TotalFiles: 1000, TotalAssetFiles: 100},
	}

	warnings := Validate(result, config.Default().Thresholds)

	found := false
	for _, w := range warnings {
		if w.Severity == models.SeverityCaution && strings.Contains(w.Message, "function") {
			found = true
		}
	}
	if !found {
		t.Errorf("no caution warning for 11 unused functions: %v", warnings)
	}
}

func TestValidateCleanResult(t *testing.T) {
	result := &models.AnalysisResult{
		Stats: models.ScanStats{TotalFiles: 50, TotalAssetFiles: 10},
	}
	if warnings := Validate(result, config.Default().Thresholds); len(warnings) != 0 {
		t.Errorf("clean result produced warnings: %v", warnings)
	}
}

func TestValidateEmptyProject(t *testing.T) {
	result := &models.AnalysisResult{}
	if warnings := Validate(result, config.Default().Thresholds); len(warnings) != 0 {
		t.Errorf("empty project produced warnings: %v", warnings)
	}
}

func TestValidateCustomThresholds(t *testing.T) {
	result := &models.AnalysisResult{
		UnusedFiles: items(2, models.CategoryFile),
		Stats:       models.ScanStats{TotalFiles: 100},
	}

	thresholds := config.ThresholdConfig{
		AssetCriticalRatio: 0.75,
		TotalCriticalRatio: 0.01,
		DomainCautionCount: 1,
	}

	warnings := Validate(result, thresholds)
	var critical, caution bool
	for _, w := range warnings {
		switch w.Severity {
		case models.SeverityCritical:
			critical = true
		case models.SeverityCaution:
			caution = true
		}
	}
	if !critical || !caution {
		t.Errorf("custom thresholds not applied: %v", warnings)
	}
}
