package daglongest

import "github.com/dd0wney/cluso-gds/pkg/algorithms"

const Name = "dagLongestPath"

type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	RelationshipWeightProperty string `json:"relationshipWeightProperty,omitempty" yaml:"relationshipWeightProperty,omitempty"`
}

func DefaultConfig() Config {
	return Config{BaseConfig: algorithms.DefaultBaseConfig()}
}

func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, nil)
}
