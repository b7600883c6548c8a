// Package lcc computes the local clustering coefficient: the share of a
// node's neighbor pairs that are themselves connected.
package lcc

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/triangle"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

type Algorithm struct{}

var _ algorithms.Algorithm[Config, *Result] = Algorithm{}

func (Algorithm) Name() string          { return Name }
func (Algorithm) DefaultConfig() Config { return DefaultConfig() }

func (Algorithm) Estimate(store *graphstore.GraphStore, cfg Config) algorithms.MemoryRange {
	est := algorithms.ArrayOf(store.NodeCount(), algorithms.BytesPerFloat64)
	if cfg.TriangleCountProperty == "" {
		est = est.Add(triangle.Algorithm{}.Estimate(store, triangle.Config{BaseConfig: cfg.BaseConfig}))
	}
	return est
}

func (Algorithm) Compute(store *graphstore.GraphStore, cfg Config, exec *algorithms.Execution) (*Result, error) {
	sr, err := NewStorageRuntime(store, cfg)
	if err != nil {
		return nil, err
	}
	return Compute(sr.View(), sr.Triangles(), cfg, exec)
}

func Build(ids results.IDMap, _ Config, r *Result) results.Builder {
	return results.NewNodeValues(ids, "localClusteringCoefficient", r.Coefficients).
		With("averageClusteringCoefficient", r.Average)
}
