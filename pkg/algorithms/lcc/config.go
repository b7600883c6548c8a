package lcc

import "github.com/dd0wney/cluso-gds/pkg/algorithms"

const Name = "localClusteringCoefficient"

type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	// TriangleCountProperty reuses counts stored on the nodes, e.g. by a
	// mutated triangleCount run, instead of counting again.
	TriangleCountProperty string `json:"triangleCountProperty,omitempty" yaml:"triangleCountProperty,omitempty"`
}

func DefaultConfig() Config { return Config{BaseConfig: algorithms.DefaultBaseConfig()} }

func (c Config) Validate() error { return algorithms.ValidateConfig(Name, c, nil) }
