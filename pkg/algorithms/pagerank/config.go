package pagerank

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

// Name is the registry name of the algorithm
const Name = "pageRank"

// Config configures PageRank.
type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	Orientation                graph.Orientation `json:"orientation" yaml:"orientation"`
	RelationshipWeightProperty string            `json:"relationshipWeightProperty,omitempty" yaml:"relationshipWeightProperty,omitempty"`

	DampingFactor float64 `json:"dampingFactor" yaml:"dampingFactor"`
	MaxIterations int     `json:"maxIterations" yaml:"maxIterations" validate:"gte=1"`
	// Tolerance bounds the per-node change of an iteration; a node whose
	// change falls below it stops propagating
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`

	// SourceNodes personalizes the ranking: only these original ids
	// receive the teleport share
	SourceNodes []uint64 `json:"sourceNodes,omitempty" yaml:"sourceNodes,omitempty"`
	// TopN adds the best ranked nodes to the stats summary
	TopN int `json:"topN" yaml:"topN" validate:"gte=0"`
}

// DefaultConfig returns the usual damping of 0.85 and up to 20 iterations.
func DefaultConfig() Config {
	return Config{
		BaseConfig:    algorithms.DefaultBaseConfig(),
		Orientation:   graph.Natural,
		DampingFactor: 0.85,
		MaxIterations: 20,
		Tolerance:     1e-7,
		TopN:          10,
	}
}

// Validate implements algorithms.Config. The damping factor lies strictly
// between 0 and 1.
func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, func(cv *validation.ConfigValidator) {
		cv.OpenRangeFloat("DampingFactor", c.DampingFactor, 0, 1)
		cv.NonNegativeFloat("Tolerance", c.Tolerance)
		cv.RangeInt("Orientation", int(c.Orientation), int(graph.Natural), int(graph.Undirected))
	})
}
