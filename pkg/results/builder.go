// Package results adapts one immutable computation result to the four
// output modes: stream (lazy rows), stats (eager summary), mutate (new
// catalog snapshot) and write (external sink). No mode re-runs the
// computation; every builder only reads the result it wraps.
package results

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

// ErrUnsupportedMode is returned when a result cannot be produced in the
// requested mode, e.g. mutating per-community scores.
var ErrUnsupportedMode = errors.New("unsupported mode")

// Mode is an output mode
type Mode string

const (
	ModeStream   Mode = "stream"
	ModeStats    Mode = "stats"
	ModeMutate   Mode = "mutate"
	ModeWrite    Mode = "write"
	ModeEstimate Mode = "estimate"
)

// ParseMode accepts a mode name in any case
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeStream, ModeStats, ModeMutate, ModeWrite, ModeEstimate:
		return m, nil
	case "":
		return ModeStream, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

// Row is one streamed record keyed by column name.
type Row map[string]any

// Summary is the stats output of a result.
type Summary map[string]any

// Column names shared across builders
const (
	ColumnNodeID      = "nodeId"
	ColumnCommunityID = "communityId"
)

// Builder is implemented by every result adapter.
type Builder interface {
	Columns() []string
	// Stream yields one row per entity. Each call walks the same immutable
	// result again.
	Stream() iter.Seq[Row]
	Stats() Summary
}

// NodePropertyProducer is implemented by builders that can be mutated back
// as a node property.
type NodePropertyProducer interface {
	NodeProperty() *graphstore.NodeProperty
}

// RelationshipProducer is implemented by builders that can be mutated back
// as a new relationship type carrying one double property.
type RelationshipProducer interface {
	Relationships(property string) *graphstore.Relationships
	DefaultRelationshipProperty() string
}

// IDMap translates dense ids back to the ids nodes were loaded with.
// *graphstore.GraphStore implements it.
type IDMap interface {
	OriginalID(dense int) uint64
}

// Identity maps every dense id to itself
type Identity struct{}

// OriginalID returns dense unchanged
func (Identity) OriginalID(dense int) uint64 { return uint64(dense) }

// Collect drains a builder's stream, for tests and small results.
func Collect(b Builder) []Row {
	var rows []Row
	for r := range b.Stream() {
		rows = append(rows, r)
	}
	return rows
}
