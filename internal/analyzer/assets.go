package analyzer

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sweeplab/sweep/pkg/models"
)

// densityDirRe matches Flutter resolution-variant folders such as 2.0x
// and 3.0x inside an asset path.
var densityDirRe = regexp.MustCompile(`^\d+(\.\d+)?x$`)

// unusedAssets reports asset files with no reference anywhere in the
// scanned sources. Matching is deliberately loose: a missed real usage
// deletes data, an extra "used" verdict only leaves a file behind.
func (a *Analyzer) unusedAssets(p *project) []models.UnusedItem {
	declared := make(map[string]bool)
	for _, d := range p.man.DeclaredAssets(p.root) {
		declared[path.Clean(filepath.ToSlash(d))] = true
	}

	used := collectUsedStrings(p.units)

	var items []models.UnusedItem
	for _, asset := range p.assets {
		clean := path.Clean(asset)
		if declared[clean] {
			continue
		}
		if p.scan.IsProtected(clean) {
			continue
		}
		if assetReferenced(clean, used) {
			continue
		}

		var size int64
		if info, err := os.Stat(filepath.Join(p.root, filepath.FromSlash(clean))); err == nil {
			size = info.Size()
		}

		items = append(items, models.UnusedItem{
			Name:        path.Base(clean),
			Path:        clean,
			Category:    models.CategoryAsset,
			Size:        size,
			Description: "no source file references this asset",
		})
	}
	return items
}

// collectUsedStrings gathers every string that could name an asset:
// string literals, alias values, and identifier references resolved
// through the per-file alias tables.
func collectUsedStrings(units map[string]*models.SourceUnit) map[string]bool {
	used := make(map[string]bool)
	for _, unit := range units {
		for _, ref := range unit.References {
			switch ref.Kind {
			case models.RefStringLiteral:
				used[ref.Name] = true
			case models.RefIdentifier, models.RefProperty:
				if v, ok := unit.Aliases[ref.Name]; ok {
					used[v] = true
				}
			}
		}
		for _, v := range unit.Aliases {
			used[v] = true
		}
	}
	return used
}

// assetReferenced applies the exact and fuzzy matching rules for one
// asset path against the used-string set.
func assetReferenced(asset string, used map[string]bool) bool {
	base := path.Base(asset)
	stem := strings.TrimSuffix(base, path.Ext(base))
	folded := foldDensityDirs(asset)

	for s := range used {
		if len(s) < 3 {
			continue
		}
		cand := path.Clean(filepath.ToSlash(s))
		switch {
		case cand == asset || cand == folded:
			return true
		case path.Base(cand) == base:
			return true
		case stem != "" && strings.TrimSuffix(path.Base(cand), path.Ext(cand)) == stem:
			return true
		case strings.Contains(asset, cand) || strings.Contains(cand, asset):
			return true
		case folded != asset && (strings.Contains(folded, cand) || strings.Contains(cand, folded)):
			return true
		}
	}
	return false
}

// foldDensityDirs removes resolution-variant segments so that a
// reference to assets/icon.png also covers assets/2.0x/icon.png.
func foldDensityDirs(asset string) string {
	segs := strings.Split(asset, "/")
	out := segs[:0]
	for _, s := range segs {
		if densityDirRe.MatchString(s) {
			continue
		}
		out = append(out, s)
	}
	return strings.Join(out, "/")
}
