package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// NodeMetric holds per-file centrality scores for the graph diagnostics
// report.
type NodeMetric struct {
	Path      string  `json:"path"`
	PageRank  float64 `json:"page_rank"`
	InDegree  int     `json:"in_degree"`
	OutDegree int     `json:"out_degree"`
}

// Metrics summarizes the structure of the dependency graph.
type Metrics struct {
	Nodes            int          `json:"nodes"`
	Edges            int          `json:"edges"`
	Components       int          `json:"components"`
	LargestComponent int          `json:"largest_component"`
	CyclicGroups     int          `json:"cyclic_groups"`
	AvgDegree        float64      `json:"avg_degree"`
	NodeMetrics      []NodeMetric `json:"node_metrics"`
}

// gonumView maps graph paths onto sequential gonum node IDs.
type gonumView struct {
	directed   *simple.DirectedGraph
	undirected *simple.UndirectedGraph
	pathToID   map[string]int64
	idToPath   map[int64]string
}

func toGonum(g *Graph) *gonumView {
	v := &gonumView{
		directed:   simple.NewDirectedGraph(),
		undirected: simple.NewUndirectedGraph(),
		pathToID:   make(map[string]int64, g.Len()),
		idToPath:   make(map[int64]string, g.Len()),
	}

	for i, p := range g.Nodes() {
		id := int64(i)
		v.pathToID[p] = id
		v.idToPath[id] = p
		v.directed.AddNode(simple.Node(id))
		v.undirected.AddNode(simple.Node(id))
	}

	for _, p := range g.Nodes() {
		from := v.pathToID[p]
		for _, dep := range g.DependenciesOf(p) {
			to := v.pathToID[dep]
			if from == to {
				continue
			}
			v.directed.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
			if !v.undirected.HasEdgeBetween(from, to) {
				v.undirected.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
			}
		}
	}
	return v
}

// CalculateMetrics computes structural diagnostics over g. Node metrics
// are sorted by PageRank, highest first.
func CalculateMetrics(g *Graph) *Metrics {
	m := &Metrics{
		Nodes: g.Len(),
		Edges: g.EdgeCount(),
	}
	if g.Len() == 0 {
		return m
	}

	view := toGonum(g)
	rank := network.PageRank(view.directed, 0.85, 1e-6)

	components := topo.ConnectedComponents(view.undirected)
	m.Components = len(components)
	for _, c := range components {
		if len(c) > m.LargestComponent {
			m.LargestComponent = len(c)
		}
	}

	for _, scc := range topo.TarjanSCC(view.directed) {
		if len(scc) > 1 {
			m.CyclicGroups++
		}
	}

	totalDegree := 0
	for _, p := range g.Nodes() {
		in := len(g.DependentsOf(p))
		out := len(g.DependenciesOf(p))
		totalDegree += in + out
		m.NodeMetrics = append(m.NodeMetrics, NodeMetric{
			Path:      p,
			PageRank:  rank[view.pathToID[p]],
			InDegree:  in,
			OutDegree: out,
		})
	}
	m.AvgDegree = float64(totalDegree) / float64(g.Len())

	sort.Slice(m.NodeMetrics, func(i, j int) bool {
		if m.NodeMetrics[i].PageRank != m.NodeMetrics[j].PageRank {
			return m.NodeMetrics[i].PageRank > m.NodeMetrics[j].PageRank
		}
		return m.NodeMetrics[i].Path < m.NodeMetrics[j].Path
	})

	return m
}
