// Package betweenness computes betweenness centrality with Brandes'
// algorithm.
//
// Each source runs a BFS, or Dijkstra when the view is weighted, and then
// back-propagates pair dependencies. Path counts are float64 so dense
// graphs cannot overflow them. Per-source dependencies are added to a
// shared atomic score array; addition commutes, so scores do not depend on
// which worker ran which source.
//
// Cancellation is checked once per source.
package betweenness

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

// Estimate counts the score array plus one scratch state per worker.
func (Algorithm) Estimate(store *graphstore.GraphStore, cfg Config) algorithms.MemoryRange {
	n := store.NodeCount()
	rels := store.RelationshipCount(cfg.RelationshipTypes...)
	perWorker := algorithms.ArrayOf(n, algorithms.BytesPerFloat64).Times(3).
		Add(algorithms.ArrayOf(n, algorithms.BytesPerBool)).
		Add(algorithms.ArrayOf(n, algorithms.BytesPerSliceHeader))
	preds := algorithms.MemoryRange{Max: int64(rels) * algorithms.BytesPerInt * 2}
	return algorithms.ArrayOf(n, algorithms.BytesPerFloat64).
		Add(perWorker.Add(preds).Times(cfg.Concurrency)).
		Add(algorithms.ArrayOf(2*rels, algorithms.BytesPerInt))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	sr, err := NewStorageRuntime(store, cfg)
	if err != nil {
		return nil, err
	}
	return Compute(sr.View(), cfg, exec)
}

// Build exposes one score per node. Undirected scores are halved since
// Compute sees every pair from both of its ends.
func Build(ids results.IDMap, cfg Config, r *Result) results.Builder {
	scores := r.Scores
	if cfg.Orientation == graph.Undirected {
		scores = make([]float64, len(r.Scores))
		for i, s := range r.Scores {
			scores[i] = s / 2
		}
	}
	return results.NewNodeValues(ids, "score", scores).
		With("sourceCount", r.SourceCount)
}
