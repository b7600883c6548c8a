// Package modularity scores a given partition of the graph.
//
// Modularity compares the weight inside each community with the weight a
// random graph of the same degrees would put there. Relationships are read
// undirected, so each one is seen from both ends and the total weight is
// doubled; the formula uses that doubled total throughout.
package modularity

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
	// at most one community per node, each a map entry of two floats
	return algorithms.ArrayOf(n, algorithms.BytesPerInt64).
		Add(algorithms.MemoryRange{Max: int64(n) * 48}).
		Add(algorithms.ArrayOf(2*rels, algorithms.BytesPerInt+algorithms.BytesPerFloat64))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	sr, err := NewStorageRuntime(store, cfg)
	if err != nil {
		return nil, err
	}
	return Compute(sr.View(), sr.Communities(), cfg, exec)
}

// Build streams one row per community; there is nothing per node to mutate.
func Build(_ results.IDMap, _ Config, r *Result) results.Builder {
	scores := make([]results.CommunityScore, len(r.Communities))
	for i, c := range r.Communities {
		scores[i] = results.CommunityScore{Community: c.Community, Score: c.Modularity}
	}
	return results.NewCommunityScores("modularity", scores).
		With("modularity", r.Total)
}
