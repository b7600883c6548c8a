package results

import (
	"iter"
	"maps"

	"github.com/dd0wney/cluso-gds/pkg/graphstore"
)

// Pair is a scored pair of dense node ids
type Pair struct {
	Node1 int
	Node2 int
	Score float64
}

// PairSet adapts pairwise results such as node similarity.
type PairSet struct {
	ids    IDMap
	column string
	pairs  []Pair
	stats  Summary
}

// NewPairSet wraps pairs, scoring them under column
func NewPairSet(ids IDMap, column string, pairs []Pair) *PairSet {
	if ids == nil {
		ids = Identity{}
	}
	return &PairSet{ids: ids, column: column, pairs: pairs, stats: Summary{}}
}

// With adds an algorithm-level entry to the stats summary
func (ps *PairSet) With(key string, value any) *PairSet {
	ps.stats[key] = value
	return ps
}

// Pairs returns the wrapped pairs
func (ps *PairSet) Pairs() []Pair { return ps.pairs }

// Columns implements Builder
func (ps *PairSet) Columns() []string { return []string{"node1", "node2", ps.column} }

// Stream implements Builder
func (ps *PairSet) Stream() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, p := range ps.pairs {
			row := Row{
				"node1":   ps.ids.OriginalID(p.Node1),
				"node2":   ps.ids.OriginalID(p.Node2),
				ps.column: p.Score,
			}
			if !yield(row) {
				return
			}
		}
	}
}

// Stats implements Builder
func (ps *PairSet) Stats() Summary {
	scores := make([]float64, len(ps.pairs))
	nodes := make(map[int]struct{})
	for i, p := range ps.pairs {
		scores[i] = p.Score
		nodes[p.Node1] = struct{}{}
	}
	s := Summary{
		"pairCount":                len(ps.pairs),
		"nodesCompared":            len(nodes),
		ps.column + "Distribution": Distribute(scores),
	}
	maps.Copy(s, ps.stats)
	return s
}

// DefaultRelationshipProperty implements RelationshipProducer
func (ps *PairSet) DefaultRelationshipProperty() string { return ps.column }

// Relationships implements RelationshipProducer
func (ps *PairSet) Relationships(property string) *graphstore.Relationships {
	rels := graphstore.NewRelationships(property)
	for _, p := range ps.pairs {
		rels.Add(p.Node1, p.Node2, map[string]float64{property: p.Score})
	}
	return rels
}

// CommunityScore is one score per community id
type CommunityScore struct {
	Community int64
	Score     float64
}

// CommunityScores adapts per-community metrics such as modularity or
// conductance. It cannot be mutated back onto nodes.
type CommunityScores struct {
	column string
	scores []CommunityScore
	stats  Summary
}

// NewCommunityScores wraps scores under column
func NewCommunityScores(column string, scores []CommunityScore) *CommunityScores {
	return &CommunityScores{column: column, scores: scores, stats: Summary{}}
}

// With adds an algorithm-level entry to the stats summary
func (cs *CommunityScores) With(key string, value any) *CommunityScores {
	cs.stats[key] = value
	return cs
}

// Scores returns the wrapped scores
func (cs *CommunityScores) Scores() []CommunityScore { return cs.scores }

// Columns implements Builder
func (cs *CommunityScores) Columns() []string { return []string{ColumnCommunityID, cs.column} }

// Stream implements Builder
func (cs *CommunityScores) Stream() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, c := range cs.scores {
			if !yield(Row{ColumnCommunityID: c.Community, cs.column: c.Score}) {
				return
			}
		}
	}
}

// Stats implements Builder
func (cs *CommunityScores) Stats() Summary {
	scores := make([]float64, len(cs.scores))
	for i, c := range cs.scores {
		scores[i] = c.Score
	}
	s := Summary{
		"communityCount":           len(cs.scores),
		cs.column + "Distribution": Distribute(scores),
	}
	maps.Copy(s, cs.stats)
	return s
}
