package sink

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/results"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

// FileSink writes every table to <dir>/<table>.jsonl, or .jsonl.sz when
// compressed.
type FileSink struct {
	dir  string
	opts Options
}

var _ results.Exporter = (*FileSink)(nil)

// NewFileSink creates dir if needed
func NewFileSink(dir string, opts Options) (*FileSink, error) {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sink dir: %w", err)
	}
	return &FileSink{dir: dir, opts: opts}, nil
}

func (s *FileSink) Name() string { return "file" }

// Path returns the file a table is written to
func (s *FileSink) Path(table string) string {
	name := table + ".jsonl"
	if s.opts.Compress {
		name += ".sz"
	}
	return filepath.Join(s.dir, name)
}

// Export writes to a temporary file and renames it into place once every
// row is written, so readers never see a partial table.
func (s *FileSink) Export(ctx context.Context, table string, _ []string, rows iter.Seq[results.Row]) (results.ExportStats, error) {
	if err := validation.ValidateToken("table", table); err != nil {
		return results.ExportStats{}, err
	}
	path := s.Path(table)
	if _, err := os.Stat(path); err == nil && !s.opts.Overwrite {
		return results.ExportStats{}, fmt.Errorf("sink file %s already exists", path)
	}

	tmp, err := os.CreateTemp(s.dir, "."+table+"-*")
	if err != nil {
		return results.ExportStats{}, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	stats, err := encodeRows(tmp, cancellable(ctx, rows), s.opts.Compress)
	if err == nil {
		err = ctx.Err()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return results.ExportStats{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return results.ExportStats{}, fmt.Errorf("publish %s: %w", path, err)
	}
	s.opts.Logger.Info("table written", logging.String("path", path), logging.Int("rows", stats.Rows))
	return stats, nil
}

// cancellable stops yielding rows once ctx is done
func cancellable(ctx context.Context, rows iter.Seq[results.Row]) iter.Seq[results.Row] {
	return func(yield func(results.Row) bool) {
		for row := range rows {
			if ctx.Err() != nil || !yield(row) {
				return
			}
		}
	}
}
