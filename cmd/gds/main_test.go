package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-gds/pkg/registry"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

const triangleGraph = `
nodes:
  - {id: 10}
  - {id: 11}
  - {id: 12}
  - {id: 13}
relationships:
  - {source: 10, target: 11}
  - {source: 11, target: 12}
  - {source: 12, target: 10}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRunCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRun_StreamJSON(t *testing.T) {
	graph := writeFile(t, t.TempDir(), "g.yaml", triangleGraph)

	out, err := runCommand(t, "wcc", "--graph", graph, "--format", "json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	var row map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[3]), &row))
	assert.Equal(t, float64(13), row["nodeId"])
}

func TestRun_Stats(t *testing.T) {
	graph := writeFile(t, t.TempDir(), "g.yaml", triangleGraph)

	out, err := runCommand(t, "wcc", "--graph", graph, "--mode", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "componentCount")
}

func TestRun_WriteToFileSink(t *testing.T) {
	dir := t.TempDir()
	graph := writeFile(t, dir, "g.yaml", triangleGraph)

	out, err := runCommand(t, "triangleCount", "--graph", graph, "--mode", "write",
		"--sink", "file://"+dir, "--table", "triangles")
	require.NoError(t, err)
	assert.Contains(t, out, "4 rows")
	assert.FileExists(t, filepath.Join(dir, "triangles.jsonl"))
}

func TestRun_RunFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "g.yaml", triangleGraph)
	file := writeFile(t, dir, "run.yaml", `
algorithm: pageRank
graph: g.yaml
mode: stats
config:
  maxIterations: 5
`)

	out, err := runCommand(t, "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "ranIterations")
}

func TestRun_Errors(t *testing.T) {
	graph := writeFile(t, t.TempDir(), "g.yaml", triangleGraph)

	_, err := runCommand(t, "--graph", graph)
	assert.ErrorContains(t, err, "no algorithm")

	_, err = runCommand(t, "nope", "--graph", graph)
	assert.ErrorIs(t, err, registry.ErrUnknownAlgorithm)

	_, err = runCommand(t, "wcc")
	assert.ErrorContains(t, err, "no graph")

	_, err = runCommand(t, "wcc", "--graph", graph, "--mode", "write")
	assert.ErrorContains(t, err, "--sink")

	_, err = runCommand(t, "wcc", "--graph", graph, "--config", `{"concurrency": 0}`)
	assert.Error(t, err)
}

func TestEstimate(t *testing.T) {
	graph := writeFile(t, t.TempDir(), "g.yaml", triangleGraph)
	cmd := newEstimateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"louvain", "--graph", graph})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "louvain")
}

func TestRunSpec_Config(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "run.yaml", "algorithm: wcc\ngraph: g.yaml\nconfig:\n  threshold: 0.5\n")

	spec, err := readRunFile(file)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "g.yaml"), spec.Graph)

	raw, err := spec.config()
	require.NoError(t, err)
	assert.Equal(t, registry.FormatYAML, raw.Format)
	assert.Contains(t, string(raw.Data), "threshold: 0.5")

	empty := &runSpec{}
	raw, err = empty.config()
	require.NoError(t, err)
	assert.Empty(t, raw.Data)
}

func TestRenderRows_Limit(t *testing.T) {
	rows := func(yield func(results.Row) bool) {
		for i := range 5 {
			if !yield(results.Row{"nodeId": uint64(i), "score": 0.5}) {
				return
			}
		}
	}
	out := renderRows([]string{"nodeId", "score"}, rows, 2)
	assert.Contains(t, out, "2 of 5 rows shown")

	out = renderRows([]string{"nodeId", "score"}, rows, 0)
	assert.NotContains(t, out, "rows shown")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "0.25", formatValue(0.25))
	assert.Equal(t, "3", formatValue(int64(3)))
	assert.Equal(t, "[1,2]", formatValue([]int64{1, 2}))
	assert.Equal(t, "", formatValue(nil))
}
