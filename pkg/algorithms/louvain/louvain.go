// Package louvain detects communities by multi-level modularity
// optimization.
//
// Each level first moves nodes between neighboring communities while that
// raises modularity, then collapses every community into a single node of
// the next level's graph. Levels are accepted only while modularity goes
// up, so the recorded per-level modularities never decrease. The final
// partition is mapped back to input nodes through every level.
//
// With more than one worker, moves within a level interleave and the
// partition found may differ from run to run; each is a valid local
// optimum. A single worker is deterministic.
package louvain

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

type Algorithm struct{}

var _ algorithms.Algorithm[Config, *Result] = Algorithm{}

func (Algorithm) Name() string          { return Name }
func (Algorithm) DefaultConfig() Config { return DefaultConfig() }

// Estimate counts the per-level arrays, one scratch state per worker and
// an aggregated graph no larger than the input projection.
func (Algorithm) Estimate(store *graphstore.GraphStore, cfg Config) algorithms.MemoryRange {
	n := store.NodeCount()
	rels := store.RelationshipCount(cfg.RelationshipTypes...)
	projection := algorithms.ArrayOf(2*rels, algorithms.BytesPerInt+algorithms.BytesPerFloat64)
	levelArrays := algorithms.ArrayOf(n, algorithms.BytesPerInt64).Times(4).
		Add(algorithms.ArrayOf(n, algorithms.BytesPerFloat64).Times(2))
	worker := algorithms.ArrayOf(n, algorithms.BytesPerFloat64+algorithms.BytesPerBool)
	est := projection.Add(levelArrays).Add(worker.Times(cfg.Concurrency))
	if cfg.IncludeIntermediateCommunities {
		est = est.Add(algorithms.ArrayOf(n, algorithms.BytesPerInt64).Times(cfg.MaxLevels))
	}
	return est.Union(est.Add(projection))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	sr, err := NewStorageRuntime(store, cfg)
	if err != nil {
		return nil, err
	}
	return Compute(sr.View(), sr.Seeds(), cfg, exec)
}

// Build exposes the final community per node. Intermediate levels are
// streamed as an extra column when they were kept.
func Build(ids results.IDMap, cfg Config, r *Result) results.Builder {
	p := results.NewPartition(ids, "community", r.Communities).
		With("communityCount", r.CommunityCount).
		With("modularity", r.Modularity).
		With("modularities", r.Modularities).
		With("ranLevels", r.Levels).
		With("didConverge", r.Converged)
	if cfg.IncludeIntermediateCommunities {
		p.WithColumn("intermediateCommunityIds", func(node int) any {
			out := make([]int64, len(r.Intermediate))
			for l, level := range r.Intermediate {
				out[l] = level[node]
			}
			return out
		})
	}
	return p
}
