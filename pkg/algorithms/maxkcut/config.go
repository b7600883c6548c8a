package maxkcut

import (
	"fmt"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

const Name = "approxMaxKCut"

// Config configures the GRASP search for a k-cut.
type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	K          int    `json:"k" yaml:"k" validate:"gte=2,lte=127"`
	Iterations int    `json:"iterations" yaml:"iterations" validate:"gte=1,lte=1000"`
	RandomSeed uint64 `json:"randomSeed" yaml:"randomSeed"`
	// Minimize looks for the lightest cut instead of the heaviest
	Minimize bool `json:"minimize" yaml:"minimize"`
	// MinCommunitySizes holds a lower bound per community; empty means none
	MinCommunitySizes []int `json:"minCommunitySizes,omitempty" yaml:"minCommunitySizes,omitempty"`

	RelationshipWeightProperty string `json:"relationshipWeightProperty,omitempty" yaml:"relationshipWeightProperty,omitempty"`
}

func DefaultConfig() Config {
	return Config{BaseConfig: algorithms.DefaultBaseConfig(), K: 2, Iterations: 8}
}

func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, func(cv *validation.ConfigValidator) {
		cv.Custom("MinCommunitySizes", func() error {
			if len(c.MinCommunitySizes) != 0 && len(c.MinCommunitySizes) != c.K {
				return fmt.Errorf("has %d entries, want k=%d", len(c.MinCommunitySizes), c.K)
			}
			for i, s := range c.MinCommunitySizes {
				if s < 0 {
					return fmt.Errorf("entry %d is negative", i)
				}
			}
			return nil
		})
	})
}

// minSizes returns one bound per community
func (c Config) minSizes() []int {
	if len(c.MinCommunitySizes) == c.K {
		return c.MinCommunitySizes
	}
	return make([]int, c.K)
}
