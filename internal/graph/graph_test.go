package graph

import (
	"testing"

	"github.com/sweeplab/sweep/pkg/models"
)

func unit(directives ...models.Directive) *models.SourceUnit {
	return &models.SourceUnit{Directives: directives}
}

func imp(target string) models.Directive {
	return models.Directive{Kind: models.DirectiveImport, Target: target}
}

func TestAddUnitMaintainsReverseEdges(t *testing.T) {
	g := New()
	g.AddUnit("a.dart", []string{"b.dart", "c.dart"})

	if got := g.DependenciesOf("a.dart"); len(got) != 2 {
		t.Fatalf("dependencies = %v", got)
	}
	if got := g.DependentsOf("b.dart"); len(got) != 1 || got[0] != "a.dart" {
		t.Errorf("dependents of b = %v", got)
	}

	// Overwriting a node must drop its stale reverse edges.
	g.AddUnit("a.dart", []string{"c.dart"})
	if got := g.DependentsOf("b.dart"); len(got) != 0 {
		t.Errorf("stale reverse edge survived: %v", got)
	}
}

func TestDependenciesOfUnknownNode(t *testing.T) {
	g := New()
	if got := g.DependenciesOf("missing.dart"); len(got) != 0 {
		t.Errorf("unknown node returned %v", got)
	}
}

func TestBuildResolvesRelativeImports(t *testing.T) {
	units := map[string]*models.SourceUnit{
		"lib/main.dart":    unit(imp("src/app.dart")),
		"lib/src/app.dart": unit(imp("../util.dart")),
		"lib/util.dart":    unit(),
	}

	g := Build(units, "demo")

	if got := g.DependenciesOf("lib/main.dart"); len(got) != 1 || got[0] != "lib/src/app.dart" {
		t.Errorf("main deps = %v", got)
	}
	if got := g.DependenciesOf("lib/src/app.dart"); len(got) != 1 || got[0] != "lib/util.dart" {
		t.Errorf("app deps = %v", got)
	}
}

func TestBuildResolvesOwnPackageImports(t *testing.T) {
	units := map[string]*models.SourceUnit{
		"lib/main.dart":       unit(imp("package:demo/src/app.dart"), imp("package:http/http.dart")),
		"lib/src/app.dart":    unit(),
		"test/main_test.dart": unit(imp("package:demo/main.dart")),
	}

	g := Build(units, "demo")

	if got := g.DependenciesOf("lib/main.dart"); len(got) != 1 || got[0] != "lib/src/app.dart" {
		t.Errorf("foreign package leaked into graph: %v", got)
	}
	if got := g.DependenciesOf("test/main_test.dart"); len(got) != 1 || got[0] != "lib/main.dart" {
		t.Errorf("test deps = %v", got)
	}
}

func TestBuildDropsUnresolvableTargets(t *testing.T) {
	units := map[string]*models.SourceUnit{
		"lib/main.dart": unit(imp("dart:io"), imp("missing.dart"), imp("package:demo/ghost.dart")),
	}

	g := Build(units, "demo")

	if got := g.DependenciesOf("lib/main.dart"); len(got) != 0 {
		t.Errorf("unresolvable targets produced edges: %v", got)
	}
	if !g.HasNode("lib/main.dart") {
		t.Error("node with no resolvable edges must still exist")
	}
}

func TestBuildPartEdgesAreBidirectional(t *testing.T) {
	units := map[string]*models.SourceUnit{
		"lib/lib.dart":  unit(models.Directive{Kind: models.DirectivePart, Target: "lib_impl.dart"}),
		"lib/lib_impl.dart": unit(models.Directive{Kind: models.DirectivePartOf, Target: "lib.dart"}),
	}

	g := Build(units, "demo")

	if got := g.DependenciesOf("lib/lib.dart"); len(got) != 1 || got[0] != "lib/lib_impl.dart" {
		t.Errorf("library deps = %v", got)
	}
	if got := g.DependenciesOf("lib/lib_impl.dart"); len(got) != 1 || got[0] != "lib/lib.dart" {
		t.Errorf("part deps = %v", got)
	}
}

func TestBuildConditionalImports(t *testing.T) {
	units := map[string]*models.SourceUnit{
		"lib/main.dart": unit(models.Directive{
			Kind:        models.DirectiveImport,
			Target:      "stub.dart",
			Conditional: []string{"io_impl.dart", "web_impl.dart"},
		}),
		"lib/stub.dart":     unit(),
		"lib/io_impl.dart":  unit(),
		"lib/web_impl.dart": unit(),
	}

	g := Build(units, "demo")

	if got := g.DependenciesOf("lib/main.dart"); len(got) != 3 {
		t.Errorf("conditional targets should all be edges, got %v", got)
	}
}

func TestFindCycles(t *testing.T) {
	g := New()
	g.AddUnit("a.dart", []string{"b.dart"})
	g.AddUnit("b.dart", []string{"c.dart"})
	g.AddUnit("c.dart", []string{"a.dart"})
	g.AddUnit("d.dart", []string{"a.dart"})

	cycles := g.FindCycles()
	if len(cycles) != 1 {
		t.Fatalf("cycles = %v", cycles)
	}
	if len(cycles[0]) != 3 {
		t.Errorf("cycle length = %d, want 3", len(cycles[0]))
	}
}

func TestFindCyclesAcyclic(t *testing.T) {
	g := New()
	g.AddUnit("a.dart", []string{"b.dart"})
	g.AddUnit("b.dart", nil)

	if cycles := g.FindCycles(); len(cycles) != 0 {
		t.Errorf("acyclic graph reported cycles: %v", cycles)
	}
}

func TestCalculateMetrics(t *testing.T) {
	g := New()
	g.AddUnit("lib/main.dart", []string{"lib/a.dart", "lib/b.dart"})
	g.AddUnit("lib/a.dart", []string{"lib/b.dart"})
	g.AddUnit("lib/b.dart", []string{"lib/a.dart"})
	g.AddUnit("lib/orphan.dart", nil)

	m := CalculateMetrics(g)

	if m.Nodes != 4 {
		t.Errorf("nodes = %d, want 4", m.Nodes)
	}
	if m.Edges != 4 {
		t.Errorf("edges = %d, want 4", m.Edges)
	}
	if m.Components != 2 {
		t.Errorf("components = %d, want 2", m.Components)
	}
	if m.CyclicGroups != 1 {
		t.Errorf("cyclic groups = %d, want 1", m.CyclicGroups)
	}
	if len(m.NodeMetrics) != 4 {
		t.Fatalf("node metrics = %d entries", len(m.NodeMetrics))
	}
	for i := 1; i < len(m.NodeMetrics); i++ {
		if m.NodeMetrics[i].PageRank > m.NodeMetrics[i-1].PageRank {
			t.Error("node metrics not sorted by PageRank")
		}
	}
}
