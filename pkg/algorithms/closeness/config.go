package closeness

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

// Name is the registry name of the algorithm
const Name = "closeness"

// Config configures closeness centrality.
type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	Orientation graph.Orientation `json:"orientation" yaml:"orientation"`
	// WassermanFaust scales each score by the share of the graph the node
	// reaches, so nodes of small components do not score 1
	WassermanFaust bool `json:"useWassermanFaust" yaml:"useWassermanFaust"`
}

// DefaultConfig follows relationships in their stored direction.
func DefaultConfig() Config {
	return Config{
		BaseConfig:  algorithms.DefaultBaseConfig(),
		Orientation: graph.Natural,
	}
}

// Validate implements algorithms.Config
func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, func(cv *validation.ConfigValidator) {
		cv.RangeInt("Orientation", int(c.Orientation), int(graph.Natural), int(graph.Undirected))
	})
}
