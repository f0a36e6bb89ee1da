package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// and how to read the results.

func describeProject() string {
	return `Runs the full unused-code analysis over a Dart/Flutter project: unreachable files, unreferenced functions, unused assets, and unimported packages.

USE WHEN:
- Auditing a project for dead code before a cleanup pass
- Estimating how much of a codebase is reachable from its entry points
- Checking pubspec.yaml for abandoned dependencies

INTERPRETING RESULTS:
- unused_files: Dart files not reachable from any entry point (main files, tests, examples, exported libraries)
- unused_functions: declarations whose names appear in no reference anywhere in the project
- unused_assets: asset files with no exact or fuzzy reference in any source file
- unused_packages: pubspec dependencies never imported
- warnings: safety signals; a critical warning means the result is statistically suspicious (generated code, dynamic references) and should not drive bulk deletion

Matching is deliberately conservative: an item listed here is a candidate for removal, not a guarantee. Manifest-declared assets, lifecycle methods, and essential packages are never reported.`
}

func describeFiles() string {
	return `Finds Dart files not reachable from any entry point via import, export, or part directives.

USE WHEN:
- Locating orphaned files left behind after refactors
- Verifying that a file scheduled for deletion really is unreachable

INTERPRETING RESULTS:
- Each item includes the file path and its size in bytes
- Entry points (main files, test trees, example trees, exporting libraries) and files whose parse failed are never reported
- Generated-code suffixes and platform directories are protected by pattern`
}

func describeFunctions() string {
	return `Finds declared functions, methods, and constructors with no references anywhere in the scanned sources.

USE WHEN:
- Cleaning up helper functions after feature removal
- Reviewing private API surface for dead members

INTERPRETING RESULTS:
- Items include declaration site (path and line) and visibility
- Framework lifecycle methods (initState, build, dispose, ...) and generated-code name patterns are allowlisted
- Public names can be used by code outside the scanned project; treat public items with extra care

Note: dynamic dispatch by string name is matched conservatively via string literals, but reflection can still cause false positives.`
}

func describeAssets() string {
	return `Finds asset files (images, fonts, media, data) with no reference in any source file.

USE WHEN:
- Shrinking app bundle size
- Pruning stale images after a redesign

INTERPRETING RESULTS:
- Items include path and byte size; sort by size to prioritize
- Matching is fuzzy on purpose: same basename, containment, and resolution-variant folders (2.0x/, 3.0x/) all count as usage
- Assets declared in pubspec.yaml are never reported, regardless of references`
}

func describePackages() string {
	return `Finds pubspec.yaml dependencies never imported by any Dart file in the project.

USE WHEN:
- Trimming the dependency tree before an upgrade
- Auditing dev_dependencies for abandoned tooling

INTERPRETING RESULTS:
- Items name the package and whether it is a runtime or dev dependency
- Essential packages (flutter, flutter_test, lints, build tooling) are allowlisted because they are used without imports`
}

func describeGraph() string {
	return `Computes structural diagnostics over the project's import graph: PageRank, degree, connected components, and import cycles.

USE WHEN:
- Understanding which files the project hinges on before a large refactor
- Hunting import cycles that slow builds or complicate testing

INTERPRETING RESULTS:
- node_metrics are sorted by PageRank; high-rank files are load-bearing
- cyclic_groups counts strongly connected components larger than one file
- cycles lists the actual file sequences; cycles are diagnostics only and do not affect reachability`
}
