package main

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/dd0wney/cluso-gds/pkg/catalog"
	"github.com/dd0wney/cluso-gds/pkg/registry"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderProcedures(procs []registry.Procedure) string {
	var sb strings.Builder
	var current registry.Category
	for _, p := range procs {
		if p.Category != current {
			if current != "" {
				sb.WriteString("\n")
			}
			current = p.Category
			sb.WriteString(categoryStyle.Render(string(current)) + "\n")
		}
		fmt.Fprintf(&sb, "  %-28s %s\n", p.Name, keyStyle.Render(p.Description))
	}
	return sb.String()
}

func printResponse(w io.Writer, resp *registry.Response, cat *catalog.Catalog, f runFlags) error {
	switch resp.Mode {
	case results.ModeStream:
		if f.format == "json" {
			return writeJSONRows(w, resp.Rows)
		}
		fmt.Fprintln(w, renderRows(resp.Columns, resp.Rows, f.limit))
		return nil
	case results.ModeEstimate:
		fmt.Fprintf(w, "%s %s\n", titleStyle.Render(resp.Algorithm), resp.Estimate.String())
		return nil
	case results.ModeMutate:
		fmt.Fprintln(w, successStyle.Render("mutated ")+resp.Mutate.Graph)
		for _, e := range cat.List() {
			if e.Name == resp.Mutate.Graph {
				fmt.Fprintf(w, "  %s %s\n", keyStyle.Render("nodeProperties"), strings.Join(e.NodeProperties, ", "))
				fmt.Fprintf(w, "  %s %s\n", keyStyle.Render("relationshipTypes"), strings.Join(e.RelationshipTypes, ", "))
			}
		}
		fmt.Fprintln(w, renderSummary(mutateSummary(resp.Mutate)))
	case results.ModeWrite:
		fmt.Fprintf(w, "%s %d rows (%s) to %s via %s\n", successStyle.Render("wrote"),
			resp.Write.RowsWritten, humanize.IBytes(uint64(resp.Write.BytesWritten)),
			resp.Write.Table, resp.Write.ExporterLabel)
	}
	fmt.Fprintln(w, renderSummary(resp.Stats))
	return nil
}

func mutateSummary(m *results.MutateResult) results.Summary {
	return results.Summary{
		"nodePropertiesWritten": m.NodePropertiesWritten,
		"relationshipsWritten":  m.RelationshipsWritten,
		"relationshipsDropped":  m.RelationshipsDropped,
	}
}

// renderRows prints at most limit rows; limit 0 prints all of them
func renderRows(columns []string, rows iter.Seq[results.Row], limit int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(columns...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	shown, total := 0, 0
	for r := range rows {
		total++
		if limit > 0 && shown >= limit {
			continue
		}
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = formatValue(r[c])
		}
		t.Row(cells...)
		shown++
	}
	out := t.Render()
	if shown < total {
		out += "\n" + keyStyle.Render(fmt.Sprintf("%d of %s rows shown", shown, humanize.Comma(int64(total))))
	}
	return out
}

func writeJSONRows(w io.Writer, rows iter.Seq[results.Row]) error {
	enc := json.NewEncoder(w)
	for r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func renderSummary(s results.Summary) string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "  %s %s\n", keyStyle.Render(k), formatValue(s[k]))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return humanize.FtoaWithDigits(x, 6)
	case string:
		return x
	case int, int64, uint64, bool:
		return fmt.Sprint(x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
