package bfs

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

// StorageRuntime resolves the source and targets to dense ids
type StorageRuntime struct {
	view    graph.View
	source  int
	targets []int
}

func NewStorageRuntime(store *graphstore.GraphStore, cfg Config) (*StorageRuntime, error) {
	source, err := algorithms.ResolveNode(Name, "SourceNode", store, cfg.SourceNode)
	if err != nil {
		return nil, err
	}
	targets, err := algorithms.ResolveNodes(Name, "TargetNodes", store, cfg.TargetNodes)
	if err != nil {
		return nil, err
	}
	view, err := algorithms.Project(Name, store, cfg.BaseConfig, algorithms.Projection{Orientation: cfg.Orientation})
	if err != nil {
		return nil, err
	}
	return &StorageRuntime{view: view, source: source, targets: targets}, nil
}

func (s *StorageRuntime) View() graph.View { return s.view }
func (s *StorageRuntime) Source() int      { return s.source }
func (s *StorageRuntime) Targets() []int   { return s.targets }
