package results

import (
	"context"
	"iter"
	"time"

	"github.com/dd0wney/cluso-gds/pkg/metrics"
)

// Exporter persists rows outside the process. Implementations live in
// pkg/sink.
type Exporter interface {
	// Name labels metrics, e.g. "file", "sql", "s3"
	Name() string
	Export(ctx context.Context, table string, columns []string, rows iter.Seq[Row]) (ExportStats, error)
}

// ExportStats is what an exporter reports back
type ExportStats struct {
	Rows  int
	Bytes int64
}

// WriteResult reports a finished write
type WriteResult struct {
	Table         string `json:"table"`
	RowsWritten   int    `json:"rowsWritten"`
	BytesWritten  int64  `json:"bytesWritten"`
	WriteMillis   int64  `json:"writeMillis"`
	ExporterLabel string `json:"exporter"`
}

// Write streams the rows of b into exp under table.
func Write(ctx context.Context, exp Exporter, table string, b Builder, m *metrics.Registry) (WriteResult, error) {
	start := time.Now()
	stats, err := exp.Export(ctx, table, b.Columns(), b.Stream())
	elapsed := time.Since(start)
	if m != nil {
		m.RecordSinkWrite(exp.Name(), stats.Rows, stats.Bytes, elapsed, err)
	}
	if err != nil {
		return WriteResult{}, err
	}
	return WriteResult{
		Table:         table,
		RowsWritten:   stats.Rows,
		BytesWritten:  stats.Bytes,
		WriteMillis:   elapsed.Milliseconds(),
		ExporterLabel: exp.Name(),
	}, nil
}
