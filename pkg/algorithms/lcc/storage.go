package lcc

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/algorithms/triangle"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

type StorageRuntime struct {
	view      graph.View
	triangles []int64
}

// NewStorageRuntime projects the undirected view and reads precomputed
// triangle counts when configured.
func NewStorageRuntime(store *graphstore.GraphStore, cfg Config) (*StorageRuntime, error) {
	tsr, err := triangle.NewStorageRuntime(store, cfg.BaseConfig)
	if err != nil {
		return nil, err
	}
	sr := &StorageRuntime{view: tsr.View()}
	if cfg.TriangleCountProperty != "" {
		counts, err := algorithms.NonNegativeLongs(Name, "TriangleCountProperty", store, cfg.TriangleCountProperty)
		if err != nil {
			return nil, err
		}
		sr.triangles = counts
	}
	return sr, nil
}

func (s *StorageRuntime) View() graph.View   { return s.view }
func (s *StorageRuntime) Triangles() []int64 { return s.triangles }
