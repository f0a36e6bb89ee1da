package models

import "time"

// Category identifies the analysis domain an unused item belongs to.
type Category string

const (
	CategoryAsset    Category = "asset"
	CategoryFunction Category = "function"
	CategoryPackage  Category = "package"
	CategoryFile     Category = "file"
)

// UnusedItem is a single entity proposed for removal. Items are terminal
// output values and never mutated after creation.
type UnusedItem struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Category    Category `json:"category"`
	Line        int      `json:"line,omitempty"`
	Size        int64    `json:"size,omitempty"`
	Description string   `json:"description"`
}

// String satisfies fmt.Stringer so encoders that only handle built-in
// string kinds (e.g. toon) can serialize the value.
func (c Category) String() string { return string(c) }

// Severity grades a safety warning.
type Severity string

// String satisfies fmt.Stringer so encoders that only handle built-in
// string kinds (e.g. toon) can serialize the value.
func (s Severity) String() string { return string(s) }

const (
	SeverityCaution  Severity = "caution"
	SeverityCritical Severity = "critical"
)

// Warning is an advisory signal from the safety validator. Warnings are
// returned as data; whether they block destructive action is the caller's
// decision.
type Warning struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// ScanStats records how much of the project a run covered.
type ScanStats struct {
	TotalFiles      int           `json:"total_files"`
	TotalAssetFiles int           `json:"total_asset_files"`
	Elapsed         time.Duration `json:"elapsed_ns"`
}

// Cycle is one import cycle reported for diagnostics. Cycles never affect
// reachability.
type Cycle []string

// AnalysisResult is the complete output of one analysis run. It is
// constructed once at the end of a run and read-only afterward.
type AnalysisResult struct {
	UnusedAssets    []UnusedItem `json:"unused_assets"`
	UnusedFunctions []UnusedItem `json:"unused_functions"`
	UnusedPackages  []UnusedItem `json:"unused_packages"`
	UnusedFiles     []UnusedItem `json:"unused_files"`
	Cycles          []Cycle      `json:"cycles,omitempty"`
	Stats           ScanStats    `json:"stats"`
	Warnings        []Warning    `json:"warnings,omitempty"`
}

// TotalUnusedItems is derived, never stored.
func (r *AnalysisResult) TotalUnusedItems() int {
	return len(r.UnusedAssets) + len(r.UnusedFunctions) + len(r.UnusedPackages) + len(r.UnusedFiles)
}

// HasUnusedItems reports whether any domain flagged anything.
func (r *AnalysisResult) HasUnusedItems() bool {
	return r.TotalUnusedItems() > 0
}

// HasCritical reports whether the safety validator escalated to critical.
func (r *AnalysisResult) HasCritical() bool {
	for _, w := range r.Warnings {
		if w.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
