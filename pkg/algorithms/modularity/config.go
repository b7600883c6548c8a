package modularity

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

const Name = "modularity"

// Config scores an existing partition stored as a node property.
type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	CommunityProperty          string  `json:"communityProperty" yaml:"communityProperty" validate:"required"`
	RelationshipWeightProperty string  `json:"relationshipWeightProperty,omitempty" yaml:"relationshipWeightProperty,omitempty"`
	Gamma                      float64 `json:"gamma" yaml:"gamma"`
}

func DefaultConfig() Config {
	return Config{BaseConfig: algorithms.DefaultBaseConfig(), Gamma: 1}
}

func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, func(cv *validation.ConfigValidator) {
		cv.PositiveFloat("Gamma", c.Gamma)
	})
}
