// Package analyzer implements unused-code detection for Dart and Flutter
// projects: entry-point classification, reachability over the import
// graph, and per-domain usage resolution for files, functions, assets
// and packages.
package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sweeplab/sweep/internal/cache"
	"github.com/sweeplab/sweep/internal/fileproc"
	"github.com/sweeplab/sweep/internal/graph"
	"github.com/sweeplab/sweep/internal/scanner"
	"github.com/sweeplab/sweep/pkg/config"
	"github.com/sweeplab/sweep/pkg/dart"
	"github.com/sweeplab/sweep/pkg/manifest"
	"github.com/sweeplab/sweep/pkg/models"
)

// Analyzer runs the analysis pipeline. Construct with New; the zero
// value is not usable.
type Analyzer struct {
	cfg        *config.Config
	frontend   dart.Frontend
	store      *cache.Cache
	onProgress fileproc.ProgressFunc
	logf       func(format string, args ...any)
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithConfig sets the configuration. Defaults apply when unset.
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) { a.cfg = cfg }
}

// WithFrontend swaps the Dart front-end, mainly for tests.
func WithFrontend(f dart.Frontend) Option {
	return func(a *Analyzer) { a.frontend = f }
}

// WithCache attaches a parse cache.
func WithCache(c *cache.Cache) Option {
	return func(a *Analyzer) { a.store = c }
}

// WithProgress registers a per-file progress callback.
func WithProgress(fn fileproc.ProgressFunc) Option {
	return func(a *Analyzer) { a.onProgress = fn }
}

// WithDebugLog routes per-file diagnostics (parse failures, cache
// activity) to fn instead of discarding them.
func WithDebugLog(fn func(format string, args ...any)) Option {
	return func(a *Analyzer) { a.logf = fn }
}

// New creates an analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		cfg:      config.Default(),
		frontend: dart.New(),
		logf:     func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.store == nil {
		a.store, _ = cache.New("", 0, false)
	}
	return a
}

// project holds the intermediate state of one analysis run.
type project struct {
	root      string
	man       *manifest.Manifest
	scan      *scanner.Scanner
	dartFiles []string
	assets    []string
	units     map[string]*models.SourceUnit
	failed    map[string]bool
	graph     *graph.Graph
	roots     map[string]bool
	reachable map[string]bool
	capped    bool
	stats     models.ScanStats
}

// load runs the shared pipeline stages: validation, manifest read, file
// discovery, parallel parsing, graph construction and reachability.
func (a *Analyzer) load(root string) (*project, error) {
	start := time.Now()

	if err := scanner.ValidateProject(root); err != nil {
		return nil, err
	}

	man, err := manifest.Load(filepath.Join(root, "pubspec.yaml"))
	if err != nil {
		return nil, &scanner.ValidationError{Root: root, Reason: err.Error()}
	}

	sc, err := scanner.New(a.cfg)
	if err != nil {
		return nil, err
	}
	res, err := sc.Scan(root)
	if err != nil {
		return nil, err
	}

	p := &project{
		root:      root,
		man:       man,
		scan:      sc,
		dartFiles: res.Dart,
		assets:    scanner.AssetCandidates(res.Other, assetRoots(man)),
		units:     make(map[string]*models.SourceUnit, len(res.Dart)),
		failed:    make(map[string]bool),
	}

	a.parseAll(p)

	p.graph = graph.Build(p.units, man.Name)
	for f := range p.failed {
		if !p.graph.HasNode(f) {
			p.graph.AddUnit(f, nil)
		}
	}

	p.roots = classifyRoots(p.units, p.failed, a.cfg)
	p.reachable, p.capped = reachableSet(p.graph, p.roots)

	p.stats = models.ScanStats{
		TotalFiles:      len(p.dartFiles),
		TotalAssetFiles: len(p.assets),
		Elapsed:         time.Since(start),
	}
	return p, nil
}

// parseAll parses every discovered Dart file in parallel. A failed file
// contributes no declarations or edges and is recorded so the classifier
// can protect it.
func (a *Analyzer) parseAll(p *project) {
	type parsed struct {
		path string
		unit *models.SourceUnit
	}

	results, errs := fileproc.MapWithProgress(p.dartFiles, func(rel string) (parsed, error) {
		abs := filepath.Join(p.root, filepath.FromSlash(rel))

		data, err := os.ReadFile(abs)
		if err != nil {
			return parsed{}, err
		}
		hash := cache.HashBytes(data)

		if unit, ok := a.store.GetUnit(rel, hash); ok {
			return parsed{path: rel, unit: unit}, nil
		}

		unit, err := a.frontend.ParseFile(abs, rel)
		if err != nil {
			return parsed{}, err
		}
		if err := a.store.PutUnit(rel, hash, unit); err != nil {
			a.logf("cache write %s: %v", rel, err)
		}
		return parsed{path: rel, unit: unit}, nil
	}, a.onProgress)

	for _, r := range results {
		p.units[r.path] = r.unit
	}
	for _, e := range errs {
		a.logf("parse %s: %v", e.Path, e.Err)
		p.failed[e.Path] = true
	}
}

// assetRoots derives the directories asset candidates live under from
// the manifest's declared asset list, always including assets/.
func assetRoots(man *manifest.Manifest) []string {
	roots := []string{"assets"}
	seen := map[string]bool{"assets": true}
	for _, entry := range man.Flutter.Assets {
		dir := entry
		if !isDirEntry(entry) {
			dir = filepath.ToSlash(filepath.Dir(entry))
		}
		dir = trimSlash(dir)
		if dir != "" && dir != "." && !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}
	return roots
}

func isDirEntry(entry string) bool {
	return len(entry) > 0 && entry[len(entry)-1] == '/'
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// AnalyzeProject runs the full pipeline over root and returns the
// aggregated result with safety warnings attached.
func (a *Analyzer) AnalyzeProject(root string) (*models.AnalysisResult, error) {
	p, err := a.load(root)
	if err != nil {
		return nil, err
	}

	result := Aggregate(
		a.unusedAssets(p),
		a.unusedFunctions(p),
		a.unusedPackages(p),
		a.unusedFiles(p),
		p.graph.FindCycles(),
		p.stats,
	)
	result.Warnings = append(capWarnings(p), Validate(result, a.cfg.Thresholds)...)
	return result, nil
}

// AnalyzeFiles runs only the unreachable-file domain.
func (a *Analyzer) AnalyzeFiles(root string) (*models.AnalysisResult, error) {
	return a.analyzeDomain(root, func(p *project) []models.UnusedItem { return a.unusedFiles(p) }, models.CategoryFile)
}

// AnalyzeAssets runs only the asset domain.
func (a *Analyzer) AnalyzeAssets(root string) (*models.AnalysisResult, error) {
	return a.analyzeDomain(root, func(p *project) []models.UnusedItem { return a.unusedAssets(p) }, models.CategoryAsset)
}

// AnalyzeFunctions runs only the function domain.
func (a *Analyzer) AnalyzeFunctions(root string) (*models.AnalysisResult, error) {
	return a.analyzeDomain(root, func(p *project) []models.UnusedItem { return a.unusedFunctions(p) }, models.CategoryFunction)
}

// AnalyzePackages runs only the package domain.
func (a *Analyzer) AnalyzePackages(root string) (*models.AnalysisResult, error) {
	return a.analyzeDomain(root, func(p *project) []models.UnusedItem { return a.unusedPackages(p) }, models.CategoryPackage)
}

func (a *Analyzer) analyzeDomain(root string, resolve func(*project) []models.UnusedItem, cat models.Category) (*models.AnalysisResult, error) {
	p, err := a.load(root)
	if err != nil {
		return nil, err
	}

	items := resolve(p)
	var assets, functions, packages, files []models.UnusedItem
	switch cat {
	case models.CategoryAsset:
		assets = items
	case models.CategoryFunction:
		functions = items
	case models.CategoryPackage:
		packages = items
	case models.CategoryFile:
		files = items
	}

	result := Aggregate(assets, functions, packages, files, p.graph.FindCycles(), p.stats)
	result.Warnings = append(capWarnings(p), Validate(result, a.cfg.Thresholds)...)
	return result, nil
}

// GraphMetrics builds the dependency graph and returns its structural
// diagnostics together with any import cycles.
func (a *Analyzer) GraphMetrics(root string) (*graph.Metrics, []models.Cycle, error) {
	p, err := a.load(root)
	if err != nil {
		return nil, nil, err
	}
	return graph.CalculateMetrics(p.graph), p.graph.FindCycles(), nil
}

func capWarnings(p *project) []models.Warning {
	if !p.capped {
		return nil
	}
	return []models.Warning{{
		Severity: models.SeverityCaution,
		Message: fmt.Sprintf(
			"reachability traversal hit its iteration cap on a graph of %d files; unreachable-file results may be incomplete",
			p.graph.Len()),
	}}
}
