package models

// DependencyKind distinguishes runtime from development dependencies.
type DependencyKind string

const (
	DependencyRuntime DependencyKind = "runtime"
	DependencyDev     DependencyKind = "dev"
)

// PackageDependency is one entry from the project manifest. Sourced from
// pubspec.yaml and never mutated.
type PackageDependency struct {
	Name    string         `json:"name"`
	Kind    DependencyKind `json:"kind"`
	Version string         `json:"version"`
}
