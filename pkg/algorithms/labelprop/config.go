package labelprop

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
)

const Name = "labelPropagation"

// Config configures label propagation.
type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	RelationshipWeightProperty string `json:"relationshipWeightProperty,omitempty" yaml:"relationshipWeightProperty,omitempty"`
	// SeedProperty names a node property of initial labels; seeded labels
	// survive into the output
	SeedProperty  string `json:"seedProperty,omitempty" yaml:"seedProperty,omitempty"`
	MaxIterations int    `json:"maxIterations" yaml:"maxIterations" validate:"gte=1"`
}

func DefaultConfig() Config {
	return Config{BaseConfig: algorithms.DefaultBaseConfig(), MaxIterations: 10}
}

func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, nil)
}
