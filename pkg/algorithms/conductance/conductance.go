// Package conductance evaluates how well separated the communities of a
// stored partition are: 0 means a community has no relationship leaving
// it, 1 means it has nothing inside.
package conductance

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

func Build(_ results.IDMap, _ Config, r *Result) results.Builder {
	scores := make([]results.CommunityScore, len(r.Communities))
	for i, c := range r.Communities {
		scores[i] = results.CommunityScore{Community: c.Community, Score: c.Conductance}
	}
	return results.NewCommunityScores("conductance", scores).
		With("averageConductance", r.Average)
}
