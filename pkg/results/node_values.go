package results

import (
	"iter"
	"maps"

	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

type extraColumn struct {
	name  string
	value func(node int) any
}

// NodeValues adapts one value per node, e.g. a centrality score or a
// distance.
type NodeValues[V Number] struct {
	ids    IDMap
	column string
	values []V
	skip   func(node int, v V) bool
	extra  []extraColumn
	stats  Summary
}

// NewNodeValues wraps values, indexed by dense node id, under column.
func NewNodeValues[V Number](ids IDMap, column string, values []V) *NodeValues[V] {
	if ids == nil {
		ids = Identity{}
	}
	return &NodeValues[V]{ids: ids, column: column, values: values, stats: Summary{}}
}

// Skip excludes nodes from stream, stats and mutate, e.g. unreachable ones.
func (b *NodeValues[V]) Skip(fn func(node int, v V) bool) *NodeValues[V] {
	b.skip = fn
	return b
}

// WithColumn adds a derived column to streamed rows
func (b *NodeValues[V]) WithColumn(name string, value func(node int) any) *NodeValues[V] {
	b.extra = append(b.extra, extraColumn{name: name, value: value})
	return b
}

// With adds an algorithm-level entry to the stats summary
func (b *NodeValues[V]) With(key string, value any) *NodeValues[V] {
	b.stats[key] = value
	return b
}

// Values returns the wrapped slice. It must not be modified.
func (b *NodeValues[V]) Values() []V { return b.values }

// Column returns the name of the value column
func (b *NodeValues[V]) Column() string { return b.column }

func (b *NodeValues[V]) skipped(node int) bool {
	return b.skip != nil && b.skip(node, b.values[node])
}

// Columns implements Builder
func (b *NodeValues[V]) Columns() []string {
	cols := []string{ColumnNodeID, b.column}
	for _, e := range b.extra {
		cols = append(cols, e.name)
	}
	return cols
}

// Stream implements Builder
func (b *NodeValues[V]) Stream() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for node, v := range b.values {
			if b.skipped(node) {
				continue
			}
			row := Row{ColumnNodeID: b.ids.OriginalID(node), b.column: v}
			for _, e := range b.extra {
				row[e.name] = e.value(node)
			}
			if !yield(row) {
				return
			}
		}
	}
}

func (b *NodeValues[V]) kept() []V {
	if b.skip == nil {
		return b.values
	}
	out := make([]V, 0, len(b.values))
	for node, v := range b.values {
		if !b.skipped(node) {
			out = append(out, v)
		}
	}
	return out
}

// Stats implements Builder: node count and the distribution of the values.
func (b *NodeValues[V]) Stats() Summary {
	kept := b.kept()
	s := Summary{
		"nodeCount":               len(kept),
		b.column + "Distribution": Distribute(kept),
	}
	maps.Copy(s, b.stats)
	return s
}

// NodeProperty implements NodePropertyProducer. Integer values become a
// long column, floats a double column; skipped nodes are stored as missing.
func (b *NodeValues[V]) NodeProperty() *graphstore.NodeProperty {
	if isFloat[V]() {
		col := make([]float64, len(b.values))
		for node, v := range b.values {
			if b.skipped(node) {
				col[node] = graphstore.MissingDouble
				continue
			}
			col[node] = float64(v)
		}
		return graphstore.NewDoubleProperty(col)
	}
	col := make([]int64, len(b.values))
	for node, v := range b.values {
		if b.skipped(node) {
			col[node] = graphstore.MissingLong
			continue
		}
		col[node] = int64(v)
	}
	return graphstore.NewLongProperty(col)
}

// Partition adapts a community or component id per node.
type Partition struct {
	*NodeValues[int64]
	noun string
}

// NewPartition wraps one id per node. noun names the groups ("component",
// "community"): the column is noun+"Id" and stats report noun+"Count" and
// the size distribution under noun+"Distribution".
func NewPartition(ids IDMap, noun string, groups []int64) *Partition {
	return &Partition{NodeValues: NewNodeValues(ids, noun+"Id", groups), noun: noun}
}

// With adds an algorithm-level entry to the stats summary
func (p *Partition) With(key string, value any) *Partition {
	p.NodeValues.With(key, value)
	return p
}

// Sizes counts members per group id
func (p *Partition) Sizes() map[int64]int {
	sizes := make(map[int64]int)
	for node, g := range p.values {
		if !p.skipped(node) {
			sizes[g]++
		}
	}
	return sizes
}

// Stats implements Builder: group count and size distribution.
func (p *Partition) Stats() Summary {
	sizes := p.Sizes()
	counts := make([]int, 0, len(sizes))
	nodes := 0
	for _, n := range sizes {
		counts = append(counts, n)
		nodes += n
	}
	s := Summary{
		"nodeCount":             nodes,
		p.noun + "Count":        len(sizes),
		p.noun + "Distribution": Distribute(counts),
	}
	maps.Copy(s, p.stats)
	return s
}
