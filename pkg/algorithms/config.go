package algorithms

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

// Config is implemented by every algorithm configuration.
type Config interface {
	Base() BaseConfig
	Validate() error
}

// BaseConfig holds the knobs every algorithm shares. Concurrency zero is
// rejected, never coerced to one.
type BaseConfig struct {
	Concurrency       int      `json:"concurrency" yaml:"concurrency" validate:"gte=1"`
	RelationshipTypes []string `json:"relationshipTypes,omitempty" yaml:"relationshipTypes,omitempty" validate:"dive,required"`
}

// DefaultBaseConfig returns the shared defaults
func DefaultBaseConfig() BaseConfig {
	return BaseConfig{Concurrency: concurrency.DefaultConcurrency}
}

// Base returns the config itself. Algorithm configs embedding BaseConfig
// inherit it.
func (c BaseConfig) Base() BaseConfig { return c }

// ValidateConfig runs struct tag validation on cfg and then the
// cross-field checks in extra. The first failure is returned as a KindConfig
// error.
func ValidateConfig(algorithm string, cfg any, extra func(cv *validation.ConfigValidator)) error {
	if err := validation.ValidateStruct(algorithm, cfg); err != nil {
		return Wrap(algorithm, err)
	}
	if extra == nil {
		return nil
	}
	cv := validation.NewConfigValidator(algorithm)
	extra(cv)
	if errs := cv.Errors(); len(errs) > 0 {
		return Wrap(algorithm, errs[0])
	}
	return nil
}

// MemoryRange is a lower and upper bound on the heap a run needs.
type MemoryRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// MemoryOf returns an exact range
func MemoryOf(bytes int64) MemoryRange { return MemoryRange{Min: bytes, Max: bytes} }

// Add sums two ranges
func (m MemoryRange) Add(o MemoryRange) MemoryRange {
	return MemoryRange{Min: m.Min + o.Min, Max: m.Max + o.Max}
}

// Times scales a range by n, e.g. per-worker state by concurrency
func (m MemoryRange) Times(n int) MemoryRange {
	return MemoryRange{Min: m.Min * int64(n), Max: m.Max * int64(n)}
}

// Union widens the range to cover o
func (m MemoryRange) Union(o MemoryRange) MemoryRange {
	return MemoryRange{Min: min(m.Min, o.Min), Max: max(m.Max, o.Max)}
}

func (m MemoryRange) String() string {
	if m.Min == m.Max {
		return humanize.IBytes(uint64(max(m.Min, 0)))
	}
	return fmt.Sprintf("[%s ... %s]", humanize.IBytes(uint64(max(m.Min, 0))), humanize.IBytes(uint64(max(m.Max, 0))))
}

// Common per-element sizes used by estimates
const (
	BytesPerInt64   = 8
	BytesPerFloat64 = 8
	BytesPerInt     = 8
	BytesPerBool    = 1
	// BytesPerSliceHeader approximates the header of a slice value
	BytesPerSliceHeader = 24
)

// ArrayOf estimates a slice of n elements of size bytes
func ArrayOf(n int, size int64) MemoryRange { return MemoryOf(int64(n)*size + BytesPerSliceHeader) }
