package analyzer

import (
	"fmt"
	"testing"

	"github.com/sweeplab/sweep/internal/graph"
	"github.com/sweeplab/sweep/pkg/config"
	"github.com/sweeplab/sweep/pkg/models"
)

func TestReachableSetFollowsForwardEdges(t *testing.T) {
	g := graph.New()
	g.AddUnit("root.dart", []string{"a.dart"})
	g.AddUnit("a.dart", []string{"b.dart"})
	g.AddUnit("b.dart", nil)
	g.AddUnit("orphan.dart", nil)

	reachable, capped := reachableSet(g, map[string]bool{"root.dart": true})
	if capped {
		t.Error("traversal reported a cap hit on a small graph")
	}

	for _, want := range []string{"root.dart", "a.dart", "b.dart"} {
		if !reachable[want] {
			t.Errorf("%s not reachable", want)
		}
	}
	if reachable["orphan.dart"] {
		t.Error("orphan marked reachable")
	}
}

func TestReachableSetTerminatesOnCycles(t *testing.T) {
	g := graph.New()
	g.AddUnit("a.dart", []string{"b.dart"})
	g.AddUnit("b.dart", []string{"c.dart"})
	g.AddUnit("c.dart", []string{"a.dart"})

	reachable, capped := reachableSet(g, map[string]bool{"a.dart": true})
	if capped {
		t.Error("cycle triggered the iteration cap")
	}
	if len(reachable) != 3 {
		t.Errorf("reachable = %v, want all 3 nodes", reachable)
	}
}

func TestReachableSetOnLargeDenseGraph(t *testing.T) {
	g := graph.New()
	const n = 500
	for i := 0; i < n; i++ {
		deps := []string{
			fmt.Sprintf("f%d.dart", (i+1)%n),
			fmt.Sprintf("f%d.dart", (i*7)%n),
		}
		g.AddUnit(fmt.Sprintf("f%d.dart", i), deps)
	}

	reachable, capped := reachableSet(g, map[string]bool{"f0.dart": true})
	if capped {
		t.Error("visited-set traversal should stay well under the cap")
	}
	if len(reachable) != n {
		t.Errorf("reachable %d of %d nodes", len(reachable), n)
	}
}

func TestReachableSetIgnoresRootsOutsideGraph(t *testing.T) {
	g := graph.New()
	g.AddUnit("a.dart", nil)

	reachable, _ := reachableSet(g, map[string]bool{"ghost.dart": true, "a.dart": true})
	if reachable["ghost.dart"] {
		t.Error("root outside the graph leaked into the reachable set")
	}
	if !reachable["a.dart"] {
		t.Error("in-graph root missing from reachable set")
	}
}

func TestClassifyRootsRules(t *testing.T) {
	cfg := config.Default()

	units := map[string]*models.SourceUnit{
		"lib/main.dart": {
			Declarations: []models.Declaration{{Name: "main", Kind: models.DeclFunction}},
		},
		"bin/tool.dart": {},
		"test/app_test.dart": {},
		"example/demo.dart":  {},
		"lib/api.dart": {
			Directives: []models.Directive{{Kind: models.DirectiveExport, Target: "src/impl.dart"}},
		},
		"lib/src/impl.dart": {},
	}
	failed := map[string]bool{"lib/broken.dart": true}

	roots := classifyRoots(units, failed, cfg)

	for _, want := range []string{
		"lib/main.dart",      // declares main
		"bin/tool.dart",      // matches bin/*.dart
		"test/app_test.dart", // test tree
		"example/demo.dart",  // example tree
		"lib/api.dart",       // re-exports
		"lib/broken.dart",    // parse failed
	} {
		if !roots[want] {
			t.Errorf("%s should be a root", want)
		}
	}
	if roots["lib/src/impl.dart"] {
		t.Error("plain library file classified as root")
	}
}

func TestClassifyRootsEmptyProject(t *testing.T) {
	roots := classifyRoots(nil, nil, config.Default())
	if len(roots) != 0 {
		t.Errorf("empty project produced roots: %v", roots)
	}
}
