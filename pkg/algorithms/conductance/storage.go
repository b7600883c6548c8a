package conductance

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

type StorageRuntime struct {
	view        graph.View
	communities []int64
}

// NewStorageRuntime reads the community column and projects the
// relationships undirected.
func NewStorageRuntime(store *graphstore.GraphStore, cfg Config) (*StorageRuntime, error) {
	communities, err := algorithms.NonNegativeLongs(Name, "CommunityProperty", store, cfg.CommunityProperty)
	if err != nil {
		return nil, err
	}
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{
		Orientation:    graph.Undirected,
		WeightProperty: cfg.RelationshipWeightProperty,
	})
	if err != nil {
		return nil, err
	}
	return &StorageRuntime{view: view, communities: communities}, nil
}

func (s *StorageRuntime) View() graph.View     { return s.view }
func (s *StorageRuntime) Communities() []int64 { return s.communities }
