package scc

import "github.com/dd0wney/cluso-gds/pkg/algorithms"

const Name = "scc"

type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	ConsecutiveIDs bool `json:"consecutiveIds" yaml:"consecutiveIds"`
}

func DefaultConfig() Config {
	return Config{BaseConfig: algorithms.DefaultBaseConfig()}
}

func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, nil)
}
