// Package kcore computes core values by parallel peeling. Nodes without
// relationships have core value 0. Cancellation is checked once per
// peeling round and partition.
package kcore

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
	return algorithms.ArrayOf(n, algorithms.BytesPerInt64).Times(3).
		Add(algorithms.ArrayOf(2*rels, algorithms.BytesPerInt))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{Orientation: graph.Undirected})
	if err != nil {
		return nil, err
	}
	return Compute(view, cfg, exec)
}

func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	return results.NewNodeValues(ids, "coreValue", r.Cores).
		With("degeneracy", r.Degeneracy)
}
