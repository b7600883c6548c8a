// Package triangle counts the triangles each node takes part in.
package triangle

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
	neighborhoods := algorithms.ArrayOf(n, algorithms.BytesPerSliceHeader).
		Add(algorithms.MemoryRange{Min: 0, Max: int64(2*rels) * algorithms.BytesPerInt})
	return algorithms.ArrayOf(n, algorithms.BytesPerInt64).Times(2).
		Add(neighborhoods).
		Add(algorithms.ArrayOf(2*rels, algorithms.BytesPerInt))
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	sr, err := NewStorageRuntime(store, cfg.BaseConfig)
	if err != nil {
		return nil, err
	}
	return Compute(sr.View(), cfg, exec)
}

// Build leaves out nodes excluded by MaxDegree.
func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	return results.NewNodeValues(ids, "triangleCount", r.Local).
		Skip(func(_ int, v int64) bool { return v == Excluded }).
		With("globalTriangleCount", r.Global)
}
