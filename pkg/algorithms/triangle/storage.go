package triangle

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

// StorageRuntime exposes the relationships undirected; direction plays no
// part in a triangle.
type StorageRuntime struct {
	view graph.View
}

func NewStorageRuntime(store *graphstore.GraphStore, cfg algorithms.BaseConfig) (*StorageRuntime, error) {
	view, err := algorithms.Project(Name, store, cfg, algorithms.Projection{Orientation: graph.Undirected})
	if err != nil {
		return nil, err
	}
	return &StorageRuntime{view: view}, nil
}

func (s *StorageRuntime) View() graph.View { return s.view }
