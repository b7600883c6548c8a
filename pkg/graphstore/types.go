package graphstore

import (
	"fmt"
	"math"
)

// ValueType is the type of a property column
type ValueType uint8

const (
	TypeDouble ValueType = iota
	TypeLong
)

func (t ValueType) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeLong:
		return "long"
	default:
		return fmt.Sprintf("ValueType(%d)", uint8(t))
	}
}

// ParseValueType accepts "double", "float", "long" and "int".
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case "", "double", "float":
		return TypeDouble, nil
	case "long", "int", "integer":
		return TypeLong, nil
	default:
		return TypeDouble, fmt.Errorf("unknown value type %q", s)
	}
}

// Value is one typed property value
type Value struct {
	Type   ValueType
	Long   int64
	Double float64
}

// LongValue wraps an int64
func LongValue(v int64) Value { return Value{Type: TypeLong, Long: v} }

// DoubleValue wraps a float64
func DoubleValue(v float64) Value { return Value{Type: TypeDouble, Double: v} }

// AsDouble converts the value to float64
func (v Value) AsDouble() float64 {
	if v.Type == TypeLong {
		return float64(v.Long)
	}
	return v.Double
}

// MissingLong is stored for nodes without a long property value
const MissingLong int64 = math.MinInt64

// MissingDouble is stored for nodes without a double property value
var MissingDouble = math.NaN()

// NodeProperty is a dense column of values indexed by dense node id.
// Exactly one of Longs or Doubles is set, matching Type.
type NodeProperty struct {
	Type    ValueType
	Longs   []int64
	Doubles []float64
}

// NewLongProperty wraps a long column
func NewLongProperty(values []int64) *NodeProperty {
	return &NodeProperty{Type: TypeLong, Longs: values}
}

// NewDoubleProperty wraps a double column
func NewDoubleProperty(values []float64) *NodeProperty {
	return &NodeProperty{Type: TypeDouble, Doubles: values}
}

// Len returns the number of values
func (p *NodeProperty) Len() int {
	if p.Type == TypeLong {
		return len(p.Longs)
	}
	return len(p.Doubles)
}

// Double returns the value of node i as float64. Missing long values
// come back as NaN.
func (p *NodeProperty) Double(i int) float64 {
	if p.Type == TypeLong {
		if p.Longs[i] == MissingLong {
			return math.NaN()
		}
		return float64(p.Longs[i])
	}
	return p.Doubles[i]
}

// Long returns the value of node i as int64 and false when it is missing
// or not integral.
func (p *NodeProperty) Long(i int) (int64, bool) {
	if p.Type == TypeLong {
		return p.Longs[i], p.Longs[i] != MissingLong
	}
	d := p.Doubles[i]
	if math.IsNaN(d) || d != math.Trunc(d) {
		return 0, false
	}
	return int64(d), true
}

// Value returns the value of node i
func (p *NodeProperty) Value(i int) Value {
	if p.Type == TypeLong {
		return LongValue(p.Longs[i])
	}
	return DoubleValue(p.Doubles[i])
}

// Relationships holds the relationships of one type as parallel arrays of
// dense ids, plus double property columns of the same length.
type Relationships struct {
	Sources    []int
	Targets    []int
	Properties map[string][]float64
}

// NewRelationships returns an empty set with the given property keys
func NewRelationships(propertyKeys ...string) *Relationships {
	r := &Relationships{Properties: make(map[string][]float64, len(propertyKeys))}
	for _, k := range propertyKeys {
		r.Properties[k] = nil
	}
	return r
}

// Add appends a relationship. Property keys not given get NaN.
func (r *Relationships) Add(source, target int, props map[string]float64) {
	r.Sources = append(r.Sources, source)
	r.Targets = append(r.Targets, target)
	for k := range props {
		if _, ok := r.Properties[k]; !ok {
			r.Properties[k] = make([]float64, len(r.Sources)-1, cap(r.Sources))
			for i := range r.Properties[k] {
				r.Properties[k][i] = math.NaN()
			}
		}
	}
	for k, col := range r.Properties {
		v, ok := props[k]
		if !ok {
			v = math.NaN()
		}
		r.Properties[k] = append(col, v)
	}
}

// Len returns the number of relationships
func (r *Relationships) Len() int { return len(r.Sources) }
