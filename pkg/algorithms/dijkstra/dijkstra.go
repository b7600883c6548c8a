// Package dijkstra finds shortest paths from one source node to one or
// more targets, or to every reachable node, on graphs with non-negative
// weights. Cancellation is checked every 1024 settled nodes.
package dijkstra

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

type Algorithm struct{}

var _ algorithms.Algorithm[Config, *Result] = Algorithm{}

func (Algorithm) Name() string          { return Name }
func (Algorithm) DefaultConfig() Config { return DefaultConfig() }

// Estimate counts distance, predecessor and settled arrays, a heap that
// holds at most one entry per relationship, and the paths.
func (Algorithm) Estimate(store *graphstore.GraphStore, cfg Config) algorithms.MemoryRange {
	n := store.NodeCount()
	rels := store.RelationshipCount(cfg.RelationshipTypes...)
	base := algorithms.ArrayOf(n, algorithms.BytesPerFloat64).
		Add(algorithms.ArrayOf(n, algorithms.BytesPerInt)).
		Add(algorithms.ArrayOf(n, algorithms.BytesPerBool)).
		Add(algorithms.ArrayOf(2*rels, algorithms.BytesPerInt+algorithms.BytesPerFloat64))
	paths := algorithms.MemoryRange{Max: int64(n) * int64(n) * (algorithms.BytesPerInt + algorithms.BytesPerFloat64)}
	if len(cfg.TargetNodes) > 0 {
		paths = algorithms.MemoryRange{Max: int64(len(cfg.TargetNodes)) * int64(n) * (algorithms.BytesPerInt + algorithms.BytesPerFloat64)}
	}
	return base.Add(paths).Add(algorithms.MemoryRange{Max: int64(rels) * 16})
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	sr, err := NewStorageRuntime(store, cfg)
	if err != nil {
		return nil, err
	}
	return Compute(sr.View(), sr.Source(), sr.Targets(), cfg, exec)
}

func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	return results.NewPathSet(ids, r.Paths)
}
