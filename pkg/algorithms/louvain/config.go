package louvain

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

const Name = "louvain"

// Config configures multi-level modularity optimization.
type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	RelationshipWeightProperty string `json:"relationshipWeightProperty,omitempty" yaml:"relationshipWeightProperty,omitempty"`
	// SeedProperty names a node property with starting communities. Nodes
	// without a value start alone.
	SeedProperty string `json:"seedProperty,omitempty" yaml:"seedProperty,omitempty"`

	MaxLevels     int     `json:"maxLevels" yaml:"maxLevels" validate:"gte=1"`
	MaxIterations int     `json:"maxIterations" yaml:"maxIterations" validate:"gte=1"`
	Tolerance     float64 `json:"tolerance" yaml:"tolerance"`
	Gamma         float64 `json:"gamma" yaml:"gamma"`

	IncludeIntermediateCommunities bool `json:"includeIntermediateCommunities" yaml:"includeIntermediateCommunities"`
	ConsecutiveIDs                 bool `json:"consecutiveIds" yaml:"consecutiveIds"`
}

func DefaultConfig() Config {
	return Config{
		BaseConfig:    algorithms.DefaultBaseConfig(),
		MaxLevels:     10,
		MaxIterations: 10,
		Tolerance:     0.0001,
		Gamma:         1,
	}
}

func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, func(cv *validation.ConfigValidator) {
		cv.NonNegativeFloat("Tolerance", c.Tolerance)
		cv.PositiveFloat("Gamma", c.Gamma)
	})
}
