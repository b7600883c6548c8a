package wcc

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

// Name is the registry name of the algorithm
const Name = "wcc"

// Config configures weakly connected components.
type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	// RelationshipWeightProperty together with Threshold ignores
	// relationships whose weight is not above Threshold
	RelationshipWeightProperty string  `json:"relationshipWeightProperty,omitempty" yaml:"relationshipWeightProperty,omitempty"`
	Threshold                  float64 `json:"threshold" yaml:"threshold" validate:"gte=0"`
	// ConsecutiveIDs relabels components to 0..k-1 in order of their
	// smallest member
	ConsecutiveIDs bool `json:"consecutiveIds" yaml:"consecutiveIds"`
	// MinBatchSize bounds how finely the node range is split
	MinBatchSize int `json:"minBatchSize" yaml:"minBatchSize" validate:"gte=1"`
}

// DefaultConfig returns the documented defaults
func DefaultConfig() Config {
	return Config{
		BaseConfig:   algorithms.DefaultBaseConfig(),
		MinBatchSize: 1024,
	}
}

// Validate implements algorithms.Config
func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, func(cv *validation.ConfigValidator) {
		cv.Finite("Threshold", c.Threshold)
		cv.When(c.Threshold > 0, func(cv *validation.ConfigValidator) {
			cv.Required("RelationshipWeightProperty", c.RelationshipWeightProperty)
		})
	})
}

func (c Config) weighted() bool {
	return c.RelationshipWeightProperty != "" && c.Threshold > 0
}
