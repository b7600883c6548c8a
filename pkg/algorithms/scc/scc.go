// Package scc finds strongly connected components, the maximal sets of
// nodes that reach each other along relationship direction, and the
// condensation DAG between them. Cancellation is checked every 1024 DFS
// roots.
package scc

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
	return algorithms.ArrayOf(n, algorithms.BytesPerInt).Times(5).
		Add(algorithms.ArrayOf(n, algorithms.BytesPerInt64)).
		Add(algorithms.ArrayOf(n, algorithms.BytesPerBool)).
		Add(algorithms.ArrayOf(rels, algorithms.BytesPerInt).Times(2))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{Orientation: graph.Natural})
	if err != nil {
		return nil, err
	}
	return Compute(view, cfg, exec)
}

func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	return results.NewPartition(ids, "component", r.Components).
		With("componentCount", r.ComponentCount).
		With("largestComponentSize", r.LargestSize).
		With("singletonCount", r.SingletonCount).
		With("condensationRelationshipCount", len(r.Condensation))
}
