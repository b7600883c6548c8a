package betweenness

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

// StorageRuntime holds the view Brandes traverses
type StorageRuntime struct {
	view graph.View
}

// NewStorageRuntime projects store with the configured orientation and,
// when set, the weight property.
func NewStorageRuntime(store *graphstore.GraphStore, cfg Config) (*StorageRuntime, error) {
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{
		Orientation:    cfg.Orientation,
		WeightProperty: cfg.RelationshipWeightProperty,
	})
	if err != nil {
		return nil, err
	}
	return &StorageRuntime{view: view}, nil
}

func (s *StorageRuntime) View() graph.View { return s.view }
