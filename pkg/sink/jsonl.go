package sink

import (
	"bufio"
	"encoding/json"
	"io"
	"iter"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-gds/pkg/results"
)

// countingWriter counts the bytes that reach the underlying writer
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// encodeRows writes one JSON object per row. With compress the stream is
// snappy framed. The reported bytes are those written to w.
func encodeRows(w io.Writer, rows iter.Seq[results.Row], compress bool) (results.ExportStats, error) {
	cw := &countingWriter{w: w}
	var (
		out   io.Writer
		flush func() error
	)
	if compress {
		sw := snappy.NewBufferedWriter(cw)
		out, flush = sw, sw.Close
	} else {
		bw := bufio.NewWriter(cw)
		out, flush = bw, bw.Flush
	}

	enc := json.NewEncoder(out)
	stats := results.ExportStats{}
	for row := range rows {
		if err := enc.Encode(row); err != nil {
			return stats, err
		}
		stats.Rows++
	}
	if err := flush(); err != nil {
		return stats, err
	}
	stats.Bytes = cw.n
	return stats, nil
}

// DecodeRows reads what encodeRows wrote
func DecodeRows(r io.Reader, compressed bool) ([]results.Row, error) {
	if compressed {
		r = snappy.NewReader(r)
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var rows []results.Row
	for {
		var row results.Row
		if err := dec.Decode(&row); err == io.EOF {
			return rows, nil
		} else if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}
