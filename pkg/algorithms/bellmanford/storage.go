package bellmanford

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

type StorageRuntime struct {
	view   graph.View
	source int
}

func NewStorageRuntime(store *graphstore.GraphStore, cfg Config) (*StorageRuntime, error) {
	source, err := algorithms.ResolveNode(Name, "SourceNode", store, cfg.SourceNode)
	if err != nil {
		return nil, err
	}
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{
		Orientation:    cfg.Orientation,
		WeightProperty: cfg.RelationshipWeightProperty,
	})
	if err != nil {
		return nil, err
	}
	return &StorageRuntime{view: view, source: source}, nil
}

func (s *StorageRuntime) View() graph.View { return s.view }
func (s *StorageRuntime) Source() int      { return s.source }
