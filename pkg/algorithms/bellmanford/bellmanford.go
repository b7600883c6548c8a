// Package bellmanford finds shortest paths from one source on graphs that
// may carry negative weights, and reports a negative cycle reachable from
// the source instead of paths when there is one.
//
// Cancellation is checked once per round and per partition of the
// frontier.
package bellmanford

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
	return algorithms.ArrayOf(n, algorithms.BytesPerFloat64).Times(2).
		Add(algorithms.ArrayOf(n, algorithms.BytesPerInt).Times(2)).
		Add(algorithms.ArrayOf(n, algorithms.BytesPerBool)).
		Add(algorithms.ArrayOf(2*rels, algorithms.BytesPerInt+algorithms.BytesPerFloat64))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	sr, err := NewStorageRuntime(store, cfg)
	if err != nil {
		return nil, err
	}
	return Compute(sr.View(), sr.Source(), cfg, exec)
}

// Build streams the paths, or the negative cycle when one was found.
func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	paths := r.Paths
	if r.ContainsNegativeCycle {
		paths = []results.Path{r.NegativeCycle}
	}
	return results.NewPathSet(ids, paths).
		With("containsNegativeCycle", r.ContainsNegativeCycle)
}
