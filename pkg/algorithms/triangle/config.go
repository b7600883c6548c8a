package triangle

import "github.com/dd0wney/cluso-gds/pkg/algorithms"

const Name = "triangleCount"

type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	// MaxDegree excludes nodes with more distinct neighbors from counting;
	// 0 means no limit.
	MaxDegree int `json:"maxDegree" yaml:"maxDegree" validate:"gte=0"`
}

func DefaultConfig() Config { return Config{BaseConfig: algorithms.DefaultBaseConfig()} }

func (c Config) Validate() error { return algorithms.ValidateConfig(Name, c, nil) }
