package analyzer

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/sweeplab/sweep/internal/graph"
)

// iterationCapFactor bounds the BFS at this multiple of the node count.
// Exceeding it surfaces a warning instead of looping forever; results
// then under-report reachability, which errs toward keeping files.
const iterationCapFactor = 10

// reachableSet performs a breadth-first traversal from roots over
// forward edges. The returned bool is true when the iteration cap was
// hit.
func reachableSet(g *graph.Graph, roots map[string]bool) (map[string]bool, bool) {
	nodes := g.Nodes()
	index := make(map[string]uint32, len(nodes))
	for i, p := range nodes {
		index[p] = uint32(i)
	}

	visited := roaring.New()
	queue := make([]string, 0, len(roots))
	for r := range roots {
		idx, ok := index[r]
		if !ok {
			continue
		}
		if !visited.Contains(idx) {
			visited.Add(idx)
			queue = append(queue, r)
		}
	}

	limit := iterationCapFactor * g.Len()
	iterations := 0
	capped := false

	for len(queue) > 0 {
		iterations++
		if iterations > limit {
			capped = true
			break
		}

		current := queue[0]
		queue = queue[1:]

		for _, dep := range g.DependenciesOf(current) {
			idx := index[dep]
			if visited.Contains(idx) {
				continue
			}
			visited.Add(idx)
			queue = append(queue, dep)
		}
	}

	reachable := make(map[string]bool, visited.GetCardinality())
	it := visited.Iterator()
	for it.HasNext() {
		reachable[nodes[it.Next()]] = true
	}
	return reachable, capped
}
