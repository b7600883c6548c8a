package bfs

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

const Name = "bfs"

// Unlimited disables the depth bound
const Unlimited = -1

// Config configures a breadth-first traversal from one source node.
type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	Orientation graph.Orientation `json:"orientation" yaml:"orientation"`
	SourceNode  uint64            `json:"sourceNode" yaml:"sourceNode"`
	// TargetNodes ends the traversal at the first of them visited
	TargetNodes []uint64 `json:"targetNodes,omitempty" yaml:"targetNodes,omitempty"`
	MaxDepth    int      `json:"maxDepth" yaml:"maxDepth" validate:"gte=-1"`
}

func DefaultConfig() Config {
	return Config{
		BaseConfig:  algorithms.DefaultBaseConfig(),
		Orientation: graph.Natural,
		MaxDepth:    Unlimited,
	}
}

func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, func(cv *validation.ConfigValidator) {
		cv.RangeInt("Orientation", int(c.Orientation), int(graph.Natural), int(graph.Undirected))
	})
}
