// Package nodesim scores node pairs by the overlap of their neighbor sets.
// Only pairs sharing at least one neighbor are compared, found through an
// inverted neighbor index. Cancellation is checked once per node batch.
package nodesim

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

type Algorithm struct{}

var _ algorithms.Algorithm[Config, *Result] = Algorithm{}

func (Algorithm) Name() string          { return Name }
func (Algorithm) DefaultConfig() Config { return DefaultConfig() }

// Estimate counts the projection, the neighbor sets with their inverted
// index, and TopK pairs per node.
func (Algorithm) Estimate(store *graphstore.GraphStore, cfg Config) algorithms.MemoryRange {
	n := store.NodeCount()
	rels := store.RelationshipCount(cfg.RelationshipTypes...)
	pairBytes := int64(2*algorithms.BytesPerInt + algorithms.BytesPerFloat64)
	r := algorithms.ArrayOf(2*rels, algorithms.BytesPerInt).Times(3)
	if cfg.TopK > 0 {
		return r.Add(algorithms.ArrayOf(n*cfg.TopK, pairBytes))
	}
	return r.Add(algorithms.MemoryRange{Min: 0, Max: int64(n) * int64(n) * pairBytes})
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{Orientation: cfg.Orientation})
	if err != nil {
		return nil, err
	}
	return Compute(view, cfg, exec)
}

// Build adapts a result; mutate and write modes emit one relationship per
// pair carrying its score.
func Build(ids results.IDMap, cfg Config, r *Result) results.Builder {
	return results.NewPairSet(ids, "similarity", r.Pairs).
		With("nodesCompared", r.NodesCompared).
		With("similarityMetric", cfg.Metric)
}
