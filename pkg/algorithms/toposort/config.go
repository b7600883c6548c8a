package toposort

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
)

const Name = "topologicalSort"

// Config configures a topological sort of the stored relationship
// direction.
type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	// ComputeMaxDistanceFromSource adds the longest distance from any node
	// without incoming relationships; hops count 1 unless weighted
	ComputeMaxDistanceFromSource bool   `json:"computeMaxDistanceFromSource" yaml:"computeMaxDistanceFromSource"`
	RelationshipWeightProperty   string `json:"relationshipWeightProperty,omitempty" yaml:"relationshipWeightProperty,omitempty"`
}

func DefaultConfig() Config {
	return Config{BaseConfig: algorithms.DefaultBaseConfig()}
}

func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, nil)
}
