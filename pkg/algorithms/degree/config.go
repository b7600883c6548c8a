package degree

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

const Name = "degree"

// Config configures degree centrality. Reverse orientation counts incoming
// relationships.
type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	Orientation                graph.Orientation `json:"orientation" yaml:"orientation"`
	RelationshipWeightProperty string            `json:"relationshipWeightProperty,omitempty" yaml:"relationshipWeightProperty,omitempty"`
}

func DefaultConfig() Config {
	return Config{BaseConfig: algorithms.DefaultBaseConfig(), Orientation: graph.Natural}
}

func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, func(cv *validation.ConfigValidator) {
		cv.RangeInt("Orientation", int(c.Orientation), int(graph.Natural), int(graph.Undirected))
	})
}
