// Package daglongest finds, for every node of a directed acyclic graph,
// the heaviest path that ends in it. Cancellation is checked once per
// topological level.
package daglongest

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
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
	paths := algorithms.MemoryRange{Min: int64(n) * 2 * algorithms.BytesPerFloat64, Max: int64(n) * int64(n) * 2 * algorithms.BytesPerFloat64}
	return algorithms.ArrayOf(n, algorithms.BytesPerFloat64).Times(2).
		Add(algorithms.ArrayOf(n, algorithms.BytesPerInt).Times(3)).
		Add(algorithms.ArrayOf(2*rels, algorithms.BytesPerInt+algorithms.BytesPerFloat64)).
		Add(paths)
}

// Compute projects the weighted view with an inverse index, which the
// predecessor pass reads.
func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{
		Orientation:    graph.Natural,
		WeightProperty: cfg.RelationshipWeightProperty,
		InverseIndex:   true,
	})
	if err != nil {
		return nil, err
	}
	return Compute(view, cfg, exec)
}

func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	return results.NewPathSet(ids, r.Paths)
}
