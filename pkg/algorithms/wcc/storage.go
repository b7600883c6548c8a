package wcc

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

// StorageRuntime projects the undirected view WCC runs on. Out and in
// relationships are unioned, so a relationship shows up from both ends;
// union-find does not mind the duplicates.
type StorageRuntime struct {
	view graph.View
}

// NewStorageRuntime builds the view for cfg. The store is not modified.
func NewStorageRuntime(store *graphstore.GraphStore, cfg Config) (*StorageRuntime, error) {
	p := algorithms.Projection{Orientation: graph.Undirected}
	if cfg.weighted() {
		p.WeightProperty = cfg.RelationshipWeightProperty
	}
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, p)
	if err != nil {
		return nil, err
	}
	return &StorageRuntime{view: view}, nil
}

// View returns the projected graph
func (s *StorageRuntime) View() graph.View { return s.view }
