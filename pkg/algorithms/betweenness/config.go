package betweenness

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

// Name is the registry name of the algorithm
const Name = "betweenness"

// Source selection strategies
const (
	StrategyAll          = "all"
	StrategyRandom       = "random"
	StrategyRandomDegree = "random_degree"
)

// Config configures betweenness centrality.
type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	Orientation graph.Orientation `json:"orientation" yaml:"orientation"`
	// RelationshipWeightProperty switches the forward phase to Dijkstra
	RelationshipWeightProperty string `json:"relationshipWeightProperty,omitempty" yaml:"relationshipWeightProperty,omitempty"`

	// SamplingStrategy picks the source nodes; SamplingSize bounds their
	// number for the random strategies
	SamplingStrategy string `json:"samplingStrategy" yaml:"samplingStrategy" validate:"oneof=all random random_degree"`
	SamplingSize     int    `json:"samplingSize" yaml:"samplingSize" validate:"gte=0"`
	SamplingSeed     uint64 `json:"samplingSeed" yaml:"samplingSeed"`
}

// DefaultConfig returns the documented defaults: every node is a source
// and relationships are followed both ways.
func DefaultConfig() Config {
	return Config{
		BaseConfig:       algorithms.DefaultBaseConfig(),
		Orientation:      graph.Undirected,
		SamplingStrategy: StrategyAll,
	}
}

// Validate implements algorithms.Config
func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, func(cv *validation.ConfigValidator) {
		cv.When(c.SamplingStrategy != StrategyAll, func(cv *validation.ConfigValidator) {
			cv.Positive("SamplingSize", c.SamplingSize)
		})
		cv.RangeInt("Orientation", int(c.Orientation), int(graph.Natural), int(graph.Undirected))
	})
}
