// Package labelprop detects communities by label propagation: nodes adopt
// the label most of their neighborhood carries until labels stop moving.
// Relationships are treated as undirected. Cancellation is checked once
// per iteration and partition.
package labelprop

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
	perRel := int64(algorithms.BytesPerInt)
	if cfg.RelationshipWeightProperty != "" {
		perRel += algorithms.BytesPerFloat64
	}
	return algorithms.ArrayOf(n, algorithms.BytesPerInt64).Times(2).
		Add(algorithms.ArrayOf(2*rels, perRel))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	sr, err := NewStorageRuntime(store, cfg)
	if err != nil {
		return nil, err
	}
	return Compute(sr.View(), sr.Seeds(), cfg, exec)
}

func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	return results.NewPartition(ids, "community", r.Labels).
		With("ranIterations", r.Iterations).
		With("didConverge", r.Converged)
}
