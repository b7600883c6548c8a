package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/registry"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

// graphName is the catalog name loaded graphs are registered under
const graphName = "input"

// runSpec describes one invocation. It is filled from a YAML run file and
// then from flags, flags taking precedence.
type runSpec struct {
	Algorithm     string `yaml:"algorithm"`
	Graph         string `yaml:"graph"`
	Nodes         string `yaml:"nodes"`
	Relationships string `yaml:"relationships"`
	Mode          string `yaml:"mode"`

	// Config is the algorithm configuration as a YAML mapping
	Config yaml.Node `yaml:"config"`

	Property         string `yaml:"property"`
	RelationshipType string `yaml:"relationshipType"`
	TargetGraph      string `yaml:"targetGraph"`

	Sink     string `yaml:"sink"`
	Table    string `yaml:"table"`
	Compress bool   `yaml:"compress"`

	// rawConfig is set by --config and --config-file and wins over Config
	rawConfig *registry.RawConfig
}

func readRunFile(path string) (*runSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec runSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse run file %s: %w", path, err)
	}
	// graph files are resolved relative to the run file
	dir := filepath.Dir(path)
	for _, p := range []*string{&spec.Graph, &spec.Nodes, &spec.Relationships} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return &spec, nil
}

// config returns the algorithm configuration in decodable form
func (s *runSpec) config() (registry.RawConfig, error) {
	if s.rawConfig != nil {
		return *s.rawConfig, nil
	}
	if s.Config.Kind == 0 {
		return registry.RawConfig{}, nil
	}
	if s.Config.Kind != yaml.MappingNode {
		return registry.RawConfig{}, errors.New("config must be a mapping")
	}
	data, err := yaml.Marshal(&s.Config)
	if err != nil {
		return registry.RawConfig{}, err
	}
	return registry.RawConfig{Data: data, Format: registry.FormatYAML}, nil
}

func (s *runSpec) mode() (results.Mode, error) {
	return results.ParseMode(s.Mode)
}

// loadGraph reads the graph named by the run: a YAML or JSON document, or
// a nodes CSV with an optional relationships CSV.
func (s *runSpec) loadGraph() (*graphstore.GraphStore, error) {
	switch {
	case s.Graph != "" && s.Nodes != "":
		return nil, errors.New("use either --graph or --nodes, not both")
	case s.Graph != "":
		ext := strings.ToLower(filepath.Ext(s.Graph))
		if ext == ".csv" {
			return graphstore.LoadCSVFiles(s.Graph, s.Relationships)
		}
		return graphstore.LoadYAMLFile(s.Graph)
	case s.Nodes != "":
		return graphstore.LoadCSVFiles(s.Nodes, s.Relationships)
	}
	return nil, errors.New("no graph given: set --graph or --nodes")
}
