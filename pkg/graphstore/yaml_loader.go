package graphstore

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlGraph struct {
	Nodes         []yamlNode         `yaml:"nodes"`
	Relationships []yamlRelationship `yaml:"relationships"`
}

type yamlNode struct {
	ID         uint64         `yaml:"id"`
	Labels     []string       `yaml:"labels"`
	Properties map[string]any `yaml:"properties"`
}

type yamlRelationship struct {
	Source     uint64             `yaml:"source"`
	Target     uint64             `yaml:"target"`
	Type       string             `yaml:"type"`
	Properties map[string]float64 `yaml:"properties"`
}

// DefaultRelationshipType is used when a loaded relationship has no type
const DefaultRelationshipType = "REL"

// LoadYAML reads a graph document of the form
//
//	nodes:
//	  - {id: 1, labels: [Person], properties: {age: 42}}
//	relationships:
//	  - {source: 1, target: 2, type: KNOWS, properties: {weight: 0.5}}
//
// JSON documents of the same shape are accepted too. Integer node
// properties become long columns, everything numeric else double.
func LoadYAML(r io.Reader) (*GraphStore, error) {
	var doc yamlGraph
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewError("load").Context("decode yaml").Cause(err).Err()
	}

	b := NewBuilder()
	for _, n := range doc.Nodes {
		if err := b.AddNode(n.ID, n.Labels...); err != nil {
			return nil, err
		}
		for key, raw := range n.Properties {
			v, err := toValue(raw)
			if err != nil {
				return nil, NewError("load").Node(n.ID).Property(key).Cause(err).Err()
			}
			if err := b.SetNodeProperty(n.ID, key, v); err != nil {
				return nil, err
			}
		}
	}
	for _, rel := range doc.Relationships {
		relType := rel.Type
		if relType == "" {
			relType = DefaultRelationshipType
		}
		if err := b.AddRelationship(relType, rel.Source, rel.Target, rel.Properties); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// LoadYAMLFile opens path and calls LoadYAML
func LoadYAMLFile(path string) (*GraphStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadYAML(f)
}

func toValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case int:
		return LongValue(int64(v)), nil
	case int64:
		return LongValue(v), nil
	case uint64:
		return LongValue(int64(v)), nil
	case float64:
		return DoubleValue(v), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported value %v (%T)", ErrTypeMismatch, raw, raw)
	}
}
