// Package pagerank ranks nodes by the stationary share of a random surfer
// that follows relationships with probability d and teleports otherwise.
//
// The computation propagates changes rather than whole ranks, so nodes
// that have settled stop contributing work. Ranks are pulled over the
// inverse index, which keeps every write local to one partition and needs
// no atomics. Cancellation is checked once per iteration and once per
// partition within it.
package pagerank

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

type Algorithm struct{}

var _ algorithms.Algorithm[Config, *Result] = Algorithm{}

func (Algorithm) Name() string          { return Name }
func (Algorithm) DefaultConfig() Config { return DefaultConfig() }

// Estimate counts rank, delta, next and out-weight arrays plus the
// projection with its inverse index.
func (Algorithm) Estimate(store *graphstore.GraphStore, cfg Config) algorithms.MemoryRange {
	n := store.NodeCount()
	rels := store.RelationshipCount(cfg.RelationshipTypes...)
	perRel := int64(algorithms.BytesPerInt)
	if cfg.RelationshipWeightProperty != "" {
		perRel += algorithms.BytesPerFloat64
	}
	return algorithms.ArrayOf(n, algorithms.BytesPerFloat64).Times(4).
		Add(algorithms.ArrayOf(2*rels, perRel))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	sr, err := NewStorageRuntime(store, cfg)
	if err != nil {
		return nil, err
	}
	return Compute(sr.View(), sr.Sources(), cfg, exec)
}

// Build exposes the ranks; stats carry the iteration count, convergence
// and the TopN best ranked nodes.
func Build(ids results.IDMap, cfg Config, r *Result) results.Builder {
	return results.NewNodeValues(ids, "score", r.Scores).
		With("ranIterations", r.Iterations).
		With("didConverge", r.Converged).
		With("topNodes", results.TopNodes(ids, r.Scores, cfg.TopN))
}
