package closeness

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

// StorageRuntime holds the unweighted view the searches run on
type StorageRuntime struct {
	view graph.View
}

func NewStorageRuntime(store *graphstore.GraphStore, cfg Config) (*StorageRuntime, error) {
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{Orientation: cfg.Orientation})
	if err != nil {
		return nil, err
	}
	return &StorageRuntime{view: view}, nil
}

func (s *StorageRuntime) View() graph.View { return s.view }
