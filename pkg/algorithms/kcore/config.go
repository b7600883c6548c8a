package kcore

import "github.com/dd0wney/cluso-gds/pkg/algorithms"

const Name = "kcore"

type Config struct {
	algorithms.BaseConfig `yaml:",inline"`
}

func DefaultConfig() Config { return Config{BaseConfig: algorithms.DefaultBaseConfig()} }

func (c Config) Validate() error { return algorithms.ValidateConfig(Name, c, nil) }
