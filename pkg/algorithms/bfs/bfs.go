// Package bfs traverses the graph breadth first from one source node,
// optionally bounded by depth and ending at the first target reached.
// Cancellation is checked once per level and partition.
package bfs

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

type Algorithm struct{}

var _ algorithms.Algorithm[Config, *Result] = Algorithm{}

func (Algorithm) Name() string          { return Name }
func (Algorithm) DefaultConfig() Config { return DefaultConfig() }

func (Algorithm) Estimate(store *graphstore.GraphStore, cfg Config) algorithms.MemoryRange {
	n := store.NodeCount()
	rels := store.RelationshipCount(cfg.RelationshipTypes...)
	return algorithms.ArrayOf(n, algorithms.BytesPerInt64).
		Add(algorithms.MemoryRange{Max: int64(n) * 2 * algorithms.BytesPerInt}).
		Add(algorithms.ArrayOf(2*rels, algorithms.BytesPerInt))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	sr, err := NewStorageRuntime(store, cfg)
	if err != nil {
		return nil, err
	}
	return Compute(sr.View(), sr.Source(), sr.Targets(), cfg, exec)
}

// Build reports the traversal as a single path whose costs are the depths.
func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	costs := make([]float64, len(r.Depths))
	for i, d := range r.Depths {
		costs[i] = float64(d)
	}
	path := results.Path{
		Source: r.Nodes[0],
		Target: r.Nodes[len(r.Nodes)-1],
		Nodes:  r.Nodes,
		Costs:  costs,
	}
	return results.NewPathSet(ids, []results.Path{path}).
		With("visitedCount", len(r.Nodes)).
		With("targetFound", r.TargetFound)
}
