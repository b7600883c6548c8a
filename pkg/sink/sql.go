package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/results"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

// Dialect selects the driver and SQL flavor of a SQLSink
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "pgx"
)

// SQLSink writes every table into a database table of the same name. The
// table is created from the first row: integers become BIGINT, floats
// DOUBLE PRECISION, booleans BOOLEAN and everything else TEXT, with lists
// stored as JSON.
type SQLSink struct {
	db      *sql.DB
	dialect Dialect
	opts    Options
}

var _ results.Exporter = (*SQLSink)(nil)

// OpenSQL opens dsn with the dialect's driver and checks the connection.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string, opts Options) (*SQLSink, error) {
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == DialectPostgres {
		db.SetMaxOpenConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return NewSQLSink(db, dialect, opts), nil
}

// NewSQLSink wraps an open database
func NewSQLSink(db *sql.DB, dialect Dialect, opts Options) *SQLSink {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	return &SQLSink{db: db, dialect: dialect, opts: opts}
}

func (s *SQLSink) Name() string { return "sql" }

// Close closes the database
func (s *SQLSink) Close() error { return s.db.Close() }

// Export inserts all rows in one transaction; a failure or cancellation
// leaves the table as it was.
func (s *SQLSink) Export(ctx context.Context, table string, columns []string, rows iter.Seq[results.Row]) (results.ExportStats, error) {
	if err := validation.ValidateToken("table", table); err != nil {
		return results.ExportStats{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return results.ExportStats{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if s.opts.Overwrite {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(table)); err != nil {
			return results.ExportStats{}, fmt.Errorf("drop %s: %w", table, err)
		}
	}

	var (
		stmt  *sql.Stmt
		stats results.ExportStats
		args  = make([]any, len(columns))
	)
	for row := range rows {
		if stmt == nil {
			if stmt, err = s.prepare(ctx, tx, table, columns, row); err != nil {
				return results.ExportStats{}, err
			}
			defer stmt.Close()
		}
		for i, c := range columns {
			args[i] = sqlValue(row[c])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return results.ExportStats{}, fmt.Errorf("insert into %s: %w", table, err)
		}
		stats.Rows++
	}
	if stmt == nil {
		if _, err := tx.ExecContext(ctx, createTable(table, columns, nil)); err != nil {
			return results.ExportStats{}, fmt.Errorf("create %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return results.ExportStats{}, fmt.Errorf("commit: %w", err)
	}
	s.opts.Logger.Info("table written", logging.String("table", table), logging.Int("rows", stats.Rows))
	return stats, nil
}

func (s *SQLSink) prepare(ctx context.Context, tx *sql.Tx, table string, columns []string, first results.Row) (*sql.Stmt, error) {
	if _, err := tx.ExecContext(ctx, createTable(table, columns, first)); err != nil {
		return nil, fmt.Errorf("create %s: %w", table, err)
	}
	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quote(c)
		if s.dialect == DialectPostgres {
			marks[i] = fmt.Sprintf("$%d", i+1)
		} else {
			marks[i] = "?"
		}
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(table), strings.Join(quoted, ", "), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("prepare insert into %s: %w", table, err)
	}
	return stmt, nil
}

// createTable types columns after the values of first; a nil row makes
// every column TEXT.
func createTable(table string, columns []string, first results.Row) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quote(c) + " " + sqlType(first[c])
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(table), strings.Join(defs, ", "))
}

func sqlType(v any) string {
	switch v.(type) {
	case int, int32, int64, uint32, uint64:
		return "BIGINT"
	case float32, float64:
		return "DOUBLE PRECISION"
	case bool:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

// sqlValue converts what builders emit into driver values
func sqlValue(v any) any {
	switch x := v.(type) {
	case nil, int64, float64, bool, string:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		// node ids; PostgreSQL has no unsigned type
		return int64(x)
	case float32:
		return float64(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

func quote(ident string) string { return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"` }
