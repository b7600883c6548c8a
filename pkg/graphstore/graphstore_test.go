package graphstore

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-gds/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSocial returns 4 nodes (ids 10..13) with KNOWS 10->11, 11->12 and
// LIKES 13->10, where only KNOWS carries a weight.
func buildSocial(t *testing.T) *GraphStore {
	t.Helper()
	b := NewBuilder()
	for i, id := range []uint64{10, 11, 12, 13} {
		label := "Person"
		if i == 3 {
			label = "Bot"
		}
		require.NoError(t, b.AddNode(id, label))
	}
	require.NoError(t, b.SetNodeProperty(10, "age", LongValue(30)))
	require.NoError(t, b.SetNodeProperty(11, "age", LongValue(40)))
	require.NoError(t, b.SetNodeProperty(12, "score", DoubleValue(0.5)))
	require.NoError(t, b.AddRelationship("KNOWS", 10, 11, map[string]float64{"weight": 2}))
	require.NoError(t, b.AddRelationship("KNOWS", 11, 12, map[string]float64{"weight": 3}))
	require.NoError(t, b.AddRelationship("LIKES", 13, 10, nil))
	s, err := b.Build()
	require.NoError(t, err)
	return s
}

func collect(seq func(func(int) bool)) []int {
	var out []int
	for v := range seq {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func TestBuilder_Basics(t *testing.T) {
	s := buildSocial(t)

	assert.Equal(t, 4, s.NodeCount())
	assert.Equal(t, 3, s.RelationshipCount())
	assert.Equal(t, 2, s.RelationshipCount("KNOWS"))
	assert.Equal(t, []string{"KNOWS", "LIKES"}, s.RelationshipTypes())
	assert.Equal(t, []string{"Bot", "Person"}, s.Labels())
	assert.Equal(t, []int{0, 1, 2}, s.NodesWithLabel("Person"))
	assert.Equal(t, []string{"Bot"}, s.NodeLabels(3))

	d, ok := s.DenseID(12)
	require.True(t, ok)
	assert.Equal(t, 2, d)
	assert.Equal(t, uint64(12), s.OriginalID(2))

	_, err := s.ToDense("test", 10, 99)
	assert.True(t, errors.Is(err, ErrNodeNotFound))
	assert.Contains(t, err.Error(), "99")
}

func TestBuilder_Rejects(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddNode(1))
	assert.True(t, errors.Is(b.AddNode(1), ErrDuplicateNode))
	assert.Error(t, b.AddNode(2, "bad label"))
	assert.True(t, errors.Is(b.AddRelationship("R", 1, 5, nil), ErrNodeNotFound))
	assert.True(t, errors.Is(b.SetNodeProperty(7, "x", LongValue(1)), ErrNodeNotFound))
	assert.Error(t, b.SetNodeProperty(1, "1bad", LongValue(1)))
	assert.Error(t, b.AddRelationship("has space", 1, 1, nil))
}

func TestNodeProperties(t *testing.T) {
	s := buildSocial(t)

	age, err := s.NodeProperty("age")
	require.NoError(t, err)
	assert.Equal(t, TypeLong, age.Type)
	v, ok := age.Long(1)
	assert.True(t, ok)
	assert.EqualValues(t, 40, v)
	_, ok = age.Long(2)
	assert.False(t, ok, "missing long")
	assert.True(t, math.IsNaN(age.Double(2)))

	score, err := s.NodeDoubles("score")
	require.NoError(t, err)
	assert.Equal(t, 0.5, score[2])
	assert.True(t, math.IsNaN(score[0]))

	_, err = s.NodeProperty("missing")
	assert.True(t, errors.Is(err, ErrPropertyNotFound))
	assert.True(t, IsNotFound(err))
}

func TestBuilder_LongWidensToDouble(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddNode(1))
	require.NoError(t, b.AddNode(2))
	require.NoError(t, b.SetNodeProperty(1, "x", LongValue(3)))
	require.NoError(t, b.SetNodeProperty(2, "x", DoubleValue(1.5)))
	s, err := b.Build()
	require.NoError(t, err)

	p, _ := s.NodeProperty("x")
	assert.Equal(t, TypeDouble, p.Type)
	assert.Equal(t, 3.0, p.Double(0))
}

func TestProject_Orientations(t *testing.T) {
	s := buildSocial(t)

	natural, err := s.Project(ProjectionConfig{RelationshipTypes: []string{"KNOWS"}})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, collect(natural.Neighbors(0)))
	assert.False(t, natural.HasInverseIndex())

	reverse, err := s.Project(ProjectionConfig{RelationshipTypes: []string{"KNOWS"}, Orientation: graph.Reverse})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, collect(reverse.Neighbors(1)))

	undirected, err := s.Project(ProjectionConfig{Orientation: graph.Undirected})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, collect(undirected.Neighbors(0)))
	assert.Equal(t, 6, undirected.RelationshipCount())
}

func TestProject_Weights(t *testing.T) {
	s := buildSocial(t)

	g, err := s.Project(ProjectionConfig{RelationshipTypes: []string{"KNOWS"}, WeightProperty: "weight"})
	require.NoError(t, err)
	require.True(t, g.HasWeights())
	for _, w := range g.WeightedNeighbors(1, 1) {
		assert.Equal(t, 3.0, w)
	}

	_, err = s.Project(ProjectionConfig{WeightProperty: "weight"})
	assert.True(t, errors.Is(err, ErrPropertyNotFound), "LIKES has no weight")
}

func TestProject_UnknownType(t *testing.T) {
	s := buildSocial(t)
	_, err := s.Project(ProjectionConfig{RelationshipTypes: []string{"FOLLOWS"}})
	require.True(t, errors.Is(err, ErrGraphProjectionFailed))
	var se *StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "FOLLOWS", se.Field)
}

func TestProject_MissingWeightUsesDefault(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddNode(1))
	require.NoError(t, b.AddNode(2))
	require.NoError(t, b.AddRelationship("R", 1, 2, map[string]float64{"w": 5}))
	require.NoError(t, b.AddRelationship("R", 2, 1, nil))
	s, err := b.Build()
	require.NoError(t, err)

	g, err := s.Project(ProjectionConfig{WeightProperty: "w", DefaultWeight: 0.25})
	require.NoError(t, err)
	for _, w := range g.WeightedNeighbors(1, 1) {
		assert.Equal(t, 0.25, w)
	}
}

func TestWithNodeProperty_CopyOnWrite(t *testing.T) {
	s := buildSocial(t)

	next, err := s.WithNodeProperty("rank", NewDoubleProperty([]float64{1, 2, 3, 4}), false)
	require.NoError(t, err)
	assert.Contains(t, next.NodePropertyKeys(), "rank")
	assert.NotContains(t, s.NodePropertyKeys(), "rank", "source store untouched")

	_, err = next.WithNodeProperty("rank", NewDoubleProperty([]float64{1, 2, 3, 4}), false)
	assert.True(t, errors.Is(err, ErrPropertyExists))
	_, err = next.WithNodeProperty("rank", NewDoubleProperty([]float64{0, 0, 0, 0}), true)
	assert.NoError(t, err)

	_, err = s.WithNodeProperty("short", NewDoubleProperty([]float64{1}), false)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestWithRelationships_SkipsDangling(t *testing.T) {
	s := buildSocial(t)

	rels := NewRelationships("cost")
	rels.Add(0, 2, map[string]float64{"cost": 1.5})
	rels.Add(1, 9, map[string]float64{"cost": 2})
	rels.Add(-1, 0, nil)

	next, dropped, err := s.WithRelationships("PATH", rels)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	kept, ok := next.Relationships("PATH")
	require.True(t, ok)
	assert.Equal(t, 1, kept.Len())
	assert.Equal(t, []float64{1.5}, kept.Properties["cost"])
	assert.False(t, s.HasRelationshipType("PATH"))
	assert.Equal(t, []string{"cost"}, next.RelationshipPropertyKeys("PATH"))

	_, _, err = next.WithRelationships("PATH", rels)
	assert.True(t, errors.Is(err, ErrRelationshipExists))
}

func TestRelationships_LateProperty(t *testing.T) {
	r := NewRelationships()
	r.Add(0, 1, nil)
	r.Add(1, 2, map[string]float64{"w": 4})
	require.Len(t, r.Properties["w"], 2)
	assert.True(t, math.IsNaN(r.Properties["w"][0]))
	assert.Equal(t, 4.0, r.Properties["w"][1])
}

func TestLoadYAML(t *testing.T) {
	doc := `
nodes:
  - {id: 1, labels: [Person], properties: {age: 42, score: 0.5}}
  - {id: 2}
  - {id: 3}
relationships:
  - {source: 1, target: 2, type: KNOWS, properties: {weight: 0.5}}
  - {source: 2, target: 3}
`
	s, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 3, s.NodeCount())
	assert.Equal(t, []string{"KNOWS", DefaultRelationshipType}, s.RelationshipTypes())

	age, _ := s.NodeProperty("age")
	assert.Equal(t, TypeLong, age.Type)
	score, _ := s.NodeProperty("score")
	assert.Equal(t, TypeDouble, score.Type)
}

func TestLoadYAML_Errors(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("nodes: [{id: 1}]\nrelationships: [{source: 1, target: 2}]"))
	assert.True(t, errors.Is(err, ErrNodeNotFound))

	_, err = LoadYAML(strings.NewReader("nodes: [{id: 1, properties: {name: bob}}]"))
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	_, err = LoadYAML(strings.NewReader("vertices: []"))
	assert.Error(t, err, "unknown fields are rejected")

	empty, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, empty.NodeCount())
}

func TestLoadCSV(t *testing.T) {
	nodes := "id,labels,community:long,score\n1,Person;Admin,7,0.5\n2,Person,,1.5\n3,,3,\n"
	rels := "source,target,type,weight\n1,2,KNOWS,2.5\n2,3,,\n"

	s, err := LoadCSV(strings.NewReader(nodes), strings.NewReader(rels))
	require.NoError(t, err)
	assert.Equal(t, 3, s.NodeCount())
	assert.Equal(t, []string{"Admin", "Person"}, s.NodeLabels(0))

	community, _ := s.NodeProperty("community")
	assert.Equal(t, TypeLong, community.Type)
	_, ok := community.Long(1)
	assert.False(t, ok)

	knows, _ := s.Relationships("KNOWS")
	assert.Equal(t, []float64{2.5}, knows.Properties["weight"])
	plain, _ := s.Relationships(DefaultRelationshipType)
	assert.Equal(t, 1, plain.Len())
	assert.Empty(t, s.RelationshipPropertyKeys(DefaultRelationshipType), "blank cells add no property")
}

func TestLoadCSV_Errors(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("name\nbob\n"), nil)
	assert.True(t, errors.Is(err, ErrPropertyNotFound))

	_, err = LoadCSV(strings.NewReader("id\nx\n"), nil)
	assert.Error(t, err)

	_, err = LoadCSV(strings.NewReader("id,score:text\n1,2\n"), nil)
	assert.Error(t, err)

	_, err = LoadCSV(strings.NewReader("id\n1\n"), strings.NewReader("source,target\n1,2\n"))
	assert.True(t, errors.Is(err, ErrNodeNotFound))
}

func TestEstimatedBytes(t *testing.T) {
	assert.Positive(t, buildSocial(t).EstimatedBytes())
}
