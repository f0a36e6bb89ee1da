// Package graph builds and queries the project dependency graph derived
// from import, export and part directives.
package graph

import (
	"path"
	"sort"
	"strings"

	"github.com/sweeplab/sweep/pkg/models"
)

// Graph is a directed graph over canonical source paths. Forward edges
// point from a file to the files it depends on; reverse edges are kept
// for dependent lookups. Mutated only during construction.
type Graph struct {
	forward map[string]map[string]struct{}
	reverse map[string]map[string]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		forward: make(map[string]map[string]struct{}),
		reverse: make(map[string]map[string]struct{}),
	}
}

// AddUnit inserts or overwrites a node and its forward edges, keeping
// the reverse mapping in sync. A nil or empty deps slice produces an
// isolated node.
func (g *Graph) AddUnit(p string, deps []string) {
	if old, ok := g.forward[p]; ok {
		for d := range old {
			delete(g.reverse[d], p)
		}
	}

	set := make(map[string]struct{}, len(deps))
	for _, d := range deps {
		if d == p {
			continue
		}
		set[d] = struct{}{}
		if g.reverse[d] == nil {
			g.reverse[d] = make(map[string]struct{})
		}
		g.reverse[d][p] = struct{}{}
		if g.forward[d] == nil {
			g.forward[d] = make(map[string]struct{})
		}
	}
	g.forward[p] = set
	if g.reverse[p] == nil {
		g.reverse[p] = make(map[string]struct{})
	}
}

// HasNode reports whether p is in the graph.
func (g *Graph) HasNode(p string) bool {
	_, ok := g.forward[p]
	return ok
}

// Len returns the node count.
func (g *Graph) Len() int { return len(g.forward) }

// Nodes returns all node paths in sorted order.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.forward))
	for p := range g.forward {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// DependenciesOf returns the direct forward edges of p, sorted. Unknown
// nodes yield an empty slice.
func (g *Graph) DependenciesOf(p string) []string {
	return sortedKeys(g.forward[p])
}

// DependentsOf returns the direct reverse edges of p, sorted.
func (g *Graph) DependentsOf(p string) []string {
	return sortedKeys(g.reverse[p])
}

// EdgeCount returns the total number of forward edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, deps := range g.forward {
		n += len(deps)
	}
	return n
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Build constructs the dependency graph from parsed units. Keys of
// units are slash-separated paths relative to the project root.
// packageName is the project's own manifest name, used to resolve
// package-scheme imports into lib/. Unresolvable and foreign targets
// are dropped. Part directives produce edges in both directions.
func Build(units map[string]*models.SourceUnit, packageName string) *Graph {
	g := New()

	type partEdge struct{ library, part string }
	var parts []partEdge

	for p, unit := range units {
		var deps []string

		for _, dir := range unit.Directives {
			targets := []string{dir.Target}
			targets = append(targets, dir.Conditional...)

			for _, t := range targets {
				resolved, ok := resolveTarget(p, t, packageName)
				if !ok {
					continue
				}
				if _, exists := units[resolved]; !exists {
					continue
				}
				deps = append(deps, resolved)
				if dir.Kind == models.DirectivePart || dir.Kind == models.DirectivePartOf {
					parts = append(parts, partEdge{library: resolved, part: p})
				}
			}
		}

		g.AddUnit(p, deps)
	}

	// Ownership runs both ways between a library and its parts, so add
	// the back edges once every node is in place.
	for _, e := range parts {
		g.addEdge(e.library, e.part)
		g.addEdge(e.part, e.library)
	}

	return g
}

func (g *Graph) addEdge(from, to string) {
	if from == to {
		return
	}
	if g.forward[from] == nil {
		g.forward[from] = make(map[string]struct{})
	}
	g.forward[from][to] = struct{}{}
	if g.reverse[to] == nil {
		g.reverse[to] = make(map[string]struct{})
	}
	g.reverse[to][from] = struct{}{}
}

// resolveTarget maps a directive URI to a project-relative path.
// Relative URIs resolve against the referencing file's directory.
// package: URIs resolve only for the project's own package. Everything
// else (dart:, foreign packages, library names in part-of) is dropped.
func resolveTarget(from, target, packageName string) (string, bool) {
	switch {
	case target == "":
		return "", false
	case strings.HasPrefix(target, "dart:"):
		return "", false
	case strings.HasPrefix(target, "package:"):
		rest := strings.TrimPrefix(target, "package:")
		name, sub, ok := strings.Cut(rest, "/")
		if !ok || name != packageName {
			return "", false
		}
		return path.Join("lib", sub), true
	case strings.HasSuffix(target, ".dart"):
		return path.Join(path.Dir(from), target), true
	default:
		// part-of by library name carries no path information.
		return "", false
	}
}

// FindCycles reports import cycles via depth-first search with an
// explicit recursion stack. Cycles are diagnostics only and never
// affect reachability.
func (g *Graph) FindCycles() []models.Cycle {
	var cycles []models.Cycle
	const maxCycles = 50

	visited := make(map[string]bool, len(g.forward))
	onStack := make(map[string]bool)
	var stack []string

	var dfs func(p string)
	dfs = func(p string) {
		if len(cycles) >= maxCycles {
			return
		}
		visited[p] = true
		onStack[p] = true
		stack = append(stack, p)

		for _, dep := range sortedKeys(g.forward[p]) {
			if onStack[dep] {
				for i, s := range stack {
					if s == dep {
						cycle := make(models.Cycle, len(stack)-i)
						copy(cycle, stack[i:])
						cycles = append(cycles, cycle)
						break
					}
				}
				continue
			}
			if !visited[dep] {
				dfs(dep)
			}
		}

		stack = stack[:len(stack)-1]
		onStack[p] = false
	}

	for _, p := range g.Nodes() {
		if !visited[p] {
			dfs(p)
		}
	}
	return cycles
}
