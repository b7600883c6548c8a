// Package closeness computes closeness centrality on unweighted graphs.
//
// Distances come from the multi-source BFS in msbfs, 64 sources per batch.
// A node scores reached/farness, where farness sums the distances from the
// nodes that reach it. The Wasserman-Faust variant multiplies that by
// reached/(n-1).
//
// Cancellation is checked once per batch of 64 sources.
package closeness

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/msbfs"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

type Algorithm struct{}

var _ algorithms.Algorithm[Config, *Result] = Algorithm{}

func (Algorithm) Name() string          { return Name }
func (Algorithm) DefaultConfig() Config { return DefaultConfig() }

// Estimate counts the three output arrays and three bit sets per node for
// each worker.
func (Algorithm) Estimate(store *graphstore.GraphStore, cfg Config) algorithms.MemoryRange {
	n := store.NodeCount()
	rels := store.RelationshipCount(cfg.RelationshipTypes...)
	perWorker := algorithms.ArrayOf(n, msbfs.Omega/8).Times(3).
		Add(algorithms.ArrayOf(n, algorithms.BytesPerInt).Times(2))
	return algorithms.ArrayOf(n, algorithms.BytesPerInt64).Times(3).
		Add(perWorker.Times(cfg.Concurrency)).
		Add(algorithms.ArrayOf(2*rels, algorithms.BytesPerInt))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	sr, err := NewStorageRuntime(store, cfg)
	if err != nil {
		return nil, err
	}
	return Compute(sr.View(), cfg, exec)
}

func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	return results.NewNodeValues(ids, "score", r.Scores)
}
