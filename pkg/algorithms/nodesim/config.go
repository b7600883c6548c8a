package nodesim

import (
	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

const Name = "nodeSimilarity"

// Similarity metrics over neighbor sets A and B
const (
	MetricJaccard = "JACCARD" // |A∩B| / |A∪B|
	MetricOverlap = "OVERLAP" // |A∩B| / min(|A|,|B|)
	MetricCosine  = "COSINE"  // |A∩B| / sqrt(|A|·|B|)
)

// Config configures node similarity.
type Config struct {
	algorithms.BaseConfig `yaml:",inline"`

	// Orientation picks the neighbor set: outgoing, incoming or both
	Orientation graph.Orientation `json:"orientation" yaml:"orientation"`
	Metric      string            `json:"similarityMetric" yaml:"similarityMetric" validate:"oneof=JACCARD OVERLAP COSINE"`

	// TopK bounds the pairs kept per node, TopN the pairs overall; 0 means
	// no bound
	TopK int `json:"topK" yaml:"topK" validate:"gte=0"`
	TopN int `json:"topN" yaml:"topN" validate:"gte=0"`

	SimilarityCutoff float64 `json:"similarityCutoff" yaml:"similarityCutoff"`
	// DegreeCutoff skips nodes with fewer distinct neighbors
	DegreeCutoff int `json:"degreeCutoff" yaml:"degreeCutoff" validate:"gte=1"`
}

func DefaultConfig() Config {
	return Config{
		BaseConfig:       algorithms.DefaultBaseConfig(),
		Metric:           MetricJaccard,
		TopK:             10,
		SimilarityCutoff: 1e-42,
		DegreeCutoff:     1,
	}
}

func (c Config) Validate() error {
	return algorithms.ValidateConfig(Name, c, func(cv *validation.ConfigValidator) {
		cv.RangeFloat("SimilarityCutoff", c.SimilarityCutoff, 0, 1)
		cv.RangeInt("Orientation", int(c.Orientation), int(graph.Natural), int(graph.Undirected))
	})
}
