package results

import (
	"iter"
	"maps"

	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

// Path is one path in dense ids. Costs[i] is the cumulative cost of
// reaching Nodes[i]; both slices have the same length.
type Path struct {
	Source int
	Target int
	Nodes  []int
	Costs  []float64
}

// TotalCost is the cost of the whole path
func (p Path) TotalCost() float64 {
	if len(p.Costs) == 0 {
		return 0
	}
	return p.Costs[len(p.Costs)-1]
}

// PathSet adapts shortest-path and traversal results.
type PathSet struct {
	ids   IDMap
	paths []Path
	stats Summary
}

// NewPathSet wraps paths
func NewPathSet(ids IDMap, paths []Path) *PathSet {
	if ids == nil {
		ids = Identity{}
	}
	return &PathSet{ids: ids, paths: paths, stats: Summary{}}
}

// With adds an algorithm-level entry to the stats summary
func (ps *PathSet) With(key string, value any) *PathSet {
	ps.stats[key] = value
	return ps
}

// Paths returns the wrapped paths
func (ps *PathSet) Paths() []Path { return ps.paths }

// Columns implements Builder
func (ps *PathSet) Columns() []string {
	return []string{"index", "sourceNode", "targetNode", "totalCost", "nodeIds", "costs"}
}

// Stream implements Builder
func (ps *PathSet) Stream() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for i, p := range ps.paths {
			nodeIDs := make([]uint64, len(p.Nodes))
			for j, n := range p.Nodes {
				nodeIDs[j] = ps.ids.OriginalID(n)
			}
			row := Row{
				"index":      i,
				"sourceNode": ps.ids.OriginalID(p.Source),
				"targetNode": ps.ids.OriginalID(p.Target),
				"totalCost":  p.TotalCost(),
				"nodeIds":    nodeIDs,
				"costs":      p.Costs,
			}
			if !yield(row) {
				return
			}
		}
	}
}

// Stats implements Builder
func (ps *PathSet) Stats() Summary {
	costs := make([]float64, len(ps.paths))
	for i, p := range ps.paths {
		costs[i] = p.TotalCost()
	}
	s := Summary{
		"pathCount":             len(ps.paths),
		"totalCostDistribution": Distribute(costs),
	}
	maps.Copy(s, ps.stats)
	return s
}

// DefaultRelationshipProperty implements RelationshipProducer
func (ps *PathSet) DefaultRelationshipProperty() string { return "totalCost" }

// Relationships implements RelationshipProducer: one source to target
// relationship per path.
func (ps *PathSet) Relationships(property string) *graphstore.Relationships {
	rels := graphstore.NewRelationships(property)
	for _, p := range ps.paths {
		rels.Add(p.Source, p.Target, map[string]float64{property: p.TotalCost()})
	}
	return rels
}
