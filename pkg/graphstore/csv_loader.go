package graphstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// csvColumn is a property column declared in a CSV header as name or
// name:type, e.g. "score:double" or "community:long".
type csvColumn struct {
	index int
	name  string
	typ   ValueType
}

func parseHeader(header []string, fixed ...string) (map[string]int, []csvColumn, error) {
	pos := make(map[string]int, len(fixed))
	var props []csvColumn
	for i, h := range header {
		h = strings.TrimSpace(h)
		isFixed := false
		for _, f := range fixed {
			if strings.EqualFold(h, f) {
				pos[f] = i
				isFixed = true
			}
		}
		if isFixed {
			continue
		}
		name, typ, _ := strings.Cut(h, ":")
		vt, err := ParseValueType(strings.ToLower(typ))
		if err != nil {
			return nil, nil, err
		}
		props = append(props, csvColumn{index: i, name: name, typ: vt})
	}
	return pos, props, nil
}

// LoadCSV reads a nodes file with header "id[,labels][,prop[:type]]..."
// (labels separated by ';') and a relationships file with header
// "source,target[,type][,prop]...". rels may be nil.
func LoadCSV(nodes, rels io.Reader) (*GraphStore, error) {
	b := NewBuilder()
	if err := readNodesCSV(b, nodes); err != nil {
		return nil, err
	}
	if rels != nil {
		if err := readRelationshipsCSV(b, rels); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// LoadCSVFiles opens both files and calls LoadCSV. relsPath may be empty.
func LoadCSVFiles(nodesPath, relsPath string) (*GraphStore, error) {
	nf, err := os.Open(nodesPath)
	if err != nil {
		return nil, err
	}
	defer nf.Close()

	var rels io.Reader
	if relsPath != "" {
		rf, err := os.Open(relsPath)
		if err != nil {
			return nil, err
		}
		defer rf.Close()
		rels = rf
	}
	return LoadCSV(nf, rels)
}

func readNodesCSV(b *Builder, r io.Reader) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return NewError("load").Context("nodes header").Cause(err).Err()
	}
	pos, props, err := parseHeader(header, "id", "labels")
	if err != nil {
		return NewError("load").Context("nodes header").Cause(err).Err()
	}
	idCol, ok := pos["id"]
	if !ok {
		return NewError("load").Context("nodes header lacks id column").Cause(ErrPropertyNotFound).Err()
	}
	labelCol, hasLabels := pos["labels"]

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return NewError("load").Context("nodes line %d", line).Cause(err).Err()
		}
		id, err := strconv.ParseUint(rec[idCol], 10, 64)
		if err != nil {
			return NewError("load").Context("nodes line %d", line).Cause(err).Err()
		}
		var labels []string
		if hasLabels && rec[labelCol] != "" {
			labels = strings.Split(rec[labelCol], ";")
		}
		if err := b.AddNode(id, labels...); err != nil {
			return err
		}
		for _, c := range props {
			raw := strings.TrimSpace(rec[c.index])
			if raw == "" {
				continue
			}
			v, err := parseValue(raw, c.typ)
			if err != nil {
				return NewError("load").Node(id).Property(c.name).Context("line %d", line).Cause(err).Err()
			}
			if err := b.SetNodeProperty(id, c.name, v); err != nil {
				return err
			}
		}
	}
}

func readRelationshipsCSV(b *Builder, r io.Reader) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return NewError("load").Context("relationships header").Cause(err).Err()
	}
	pos, props, err := parseHeader(header, "source", "target", "type")
	if err != nil {
		return NewError("load").Context("relationships header").Cause(err).Err()
	}
	srcCol, okS := pos["source"]
	dstCol, okT := pos["target"]
	if !okS || !okT {
		return NewError("load").Context("relationships header needs source and target").Cause(ErrPropertyNotFound).Err()
	}
	typeCol, hasType := pos["type"]

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return NewError("load").Context("relationships line %d", line).Cause(err).Err()
		}
		src, err := strconv.ParseUint(rec[srcCol], 10, 64)
		if err != nil {
			return NewError("load").Context("relationships line %d", line).Cause(err).Err()
		}
		dst, err := strconv.ParseUint(rec[dstCol], 10, 64)
		if err != nil {
			return NewError("load").Context("relationships line %d", line).Cause(err).Err()
		}
		relType := DefaultRelationshipType
		if hasType && rec[typeCol] != "" {
			relType = rec[typeCol]
		}
		var values map[string]float64
		for _, c := range props {
			raw := strings.TrimSpace(rec[c.index])
			if raw == "" {
				continue
			}
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return NewError("load").Property(c.name).Context("relationships line %d", line).Cause(err).Err()
			}
			if values == nil {
				values = make(map[string]float64, len(props))
			}
			values[c.name] = f
		}
		if err := b.AddRelationship(relType, src, dst, values); err != nil {
			return err
		}
	}
}

func parseValue(raw string, typ ValueType) (Value, error) {
	switch typ {
	case TypeLong:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, err
		}
		return LongValue(i), nil
	case TypeDouble:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, err
		}
		return DoubleValue(f), nil
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrTypeMismatch, typ)
	}
}
