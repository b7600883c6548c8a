package conductance

import "github.com/dd0wney/cluso-gds/pkg/algorithms"

const Name = "conductance"

type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	CommunityProperty          string `json:"communityProperty" yaml:"communityProperty" validate:"required"`
	RelationshipWeightProperty string `json:"relationshipWeightProperty,omitempty" yaml:"relationshipWeightProperty,omitempty"`
}

func DefaultConfig() Config { return Config{BaseConfig: algorithms.DefaultBaseConfig()} }

func (c Config) Validate() error { return algorithms.ValidateConfig(Name, c, nil) }
