package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
)

// Format is the encoding of a RawConfig
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// RawConfig is an undecoded algorithm configuration. Fields it leaves out
// keep the algorithm's defaults; unknown fields are rejected.
type RawConfig struct {
	Data   []byte
	Format Format
}

// JSON wraps a JSON object
func JSON(s string) RawConfig { return RawConfig{Data: []byte(s), Format: FormatJSON} }

// YAML wraps a YAML mapping
func YAML(s string) RawConfig { return RawConfig{Data: []byte(s), Format: FormatYAML} }

// FormatForPath picks YAML for .yaml and .yml files and JSON otherwise
func FormatForPath(path string) Format {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

func (r RawConfig) empty() bool { return len(bytes.TrimSpace(r.Data)) == 0 }

// decode overlays raw onto cfg, which holds the defaults on entry
func decode[C any](algorithm string, raw RawConfig, cfg *C) error {
	if raw.empty() {
		return nil
	}
	var err error
	switch raw.Format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(raw.Data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	default:
		dec := json.NewDecoder(bytes.NewReader(raw.Data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return algorithms.ConfigError(algorithm, "", "decode config: %v", err)
	}
	return nil
}
