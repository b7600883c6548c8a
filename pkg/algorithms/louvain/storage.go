package louvain

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

// StorageRuntime holds the undirected view and, when configured, the seed
// communities.
type StorageRuntime struct {
	view  graph.View
	seeds []int64
}

func NewStorageRuntime(store *graphstore.GraphStore, cfg Config) (*StorageRuntime, error) {
	sr := &StorageRuntime{}
	if cfg.SeedProperty != "" {
		seeds, err := algorithms.NonNegativeLongs(Name, "SeedProperty", store, cfg.SeedProperty)
		if err != nil {
			return nil, err
		}
		sr.seeds = seeds
	}
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{
		Orientation:    graph.Undirected,
		WeightProperty: cfg.RelationshipWeightProperty,
	})
	if err != nil {
		return nil, err
	}
	sr.view = view
	return sr, nil
}

func (s *StorageRuntime) View() graph.View { return s.view }

// Seeds returns the seed community per node, -1 for unseeded nodes, or nil
// without a seed property.
func (s *StorageRuntime) Seeds() []int64 { return s.seeds }
