// Package maxkcut approximates a maximum (or minimum) k-cut with GRASP:
// random construction honoring per-community minimum sizes, then greedy
// single-node moves until no move improves the cut. Relationships are
// treated as undirected. Cancellation is checked once per iteration and
// partition.
package maxkcut

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

// Estimate counts the projection, two assignments and the node to
// community weight matrix.
func (Algorithm) Estimate(store *graphstore.GraphStore, cfg Config) algorithms.MemoryRange {
	n := store.NodeCount()
	rels := store.RelationshipCount(cfg.RelationshipTypes...)
	perRel := int64(algorithms.BytesPerInt)
	if cfg.RelationshipWeightProperty != "" {
		perRel += algorithms.BytesPerFloat64
	}
	return algorithms.ArrayOf(n, algorithms.BytesPerInt64).Times(2).
		Add(algorithms.ArrayOf(n*cfg.K, algorithms.BytesPerFloat64)).
		Add(algorithms.ArrayOf(2*rels, perRel))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{
		Orientation:    graph.Undirected,
		WeightProperty: cfg.RelationshipWeightProperty,
	})
	if err != nil {
		return nil, err
	}
	return Compute(view, cfg, exec)
}

func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	return results.NewPartition(ids, "community", r.Communities).
		With("cutCost", r.CutCost)
}
