package pagerank

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

// StorageRuntime holds a view with an inverse index, so ranks can be pulled
// from incoming relationships, and the dense ids of the source nodes.
type StorageRuntime struct {
	view    graph.View
	sources []int
}

func NewStorageRuntime(store *graphstore.GraphStore, cfg Config) (*StorageRuntime, error) {
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{
		Orientation:    cfg.Orientation,
		WeightProperty: cfg.RelationshipWeightProperty,
		InverseIndex:   true,
	})
	if err != nil {
		return nil, err
	}
	sources, err := algorithms.ResolveNodes(Name, "SourceNodes", store, cfg.SourceNodes)
	if err != nil {
		return nil, err
	}
	return &StorageRuntime{view: view, sources: sources}, nil
}

func (s *StorageRuntime) View() graph.View { return s.view }
func (s *StorageRuntime) Sources() []int   { return s.sources }
