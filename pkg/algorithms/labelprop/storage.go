package labelprop

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

// StorageRuntime holds the undirected view and the optional seed labels
type StorageRuntime struct {
	view  graph.View
	seeds []int64
}

func NewStorageRuntime(store *graphstore.GraphStore, cfg Config) (*StorageRuntime, error) {
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{
		Orientation:    graph.Undirected,
		WeightProperty: cfg.RelationshipWeightProperty,
	})
	if err != nil {
		return nil, err
	}
	sr := &StorageRuntime{view: view}
	if cfg.SeedProperty != "" {
		if sr.seeds, err = algorithms.NonNegativeLongs(Name, "SeedProperty", store, cfg.SeedProperty); err != nil {
			return nil, err
		}
	}
	return sr, nil
}

func (s *StorageRuntime) View() graph.View { return s.view }
func (s *StorageRuntime) Seeds() []int64   { return s.seeds }
