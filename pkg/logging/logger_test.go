package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("Failed to unmarshal %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{" Info ", InfoLevel},
		{"warning", WarnLevel},
		{"WARN", WarnLevel},
		{"error", ErrorLevel},
		{"verbose", InfoLevel},
		{"", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFieldConstructors(t *testing.T) {
	t.Run("Duration", func(t *testing.T) {
		f := Duration("timeout", 5*time.Second)
		if f.Key != "timeout" || f.Value != "5s" {
			t.Errorf("Duration() = %+v", f)
		}
	})

	t.Run("Error_nil", func(t *testing.T) {
		f := Error(nil)
		if f.Key != "error" || f.Value != nil {
			t.Errorf("Error(nil) = %+v", f)
		}
	})

	t.Run("Error", func(t *testing.T) {
		f := Error(errors.New("boom"))
		if f.Value != "boom" {
			t.Errorf("Error() = %+v", f)
		}
	})

	t.Run("Latency", func(t *testing.T) {
		f := Latency(1500 * time.Microsecond)
		if f.Key != "latency_ms" || f.Value != 1.5 {
			t.Errorf("Latency() = %+v", f)
		}
	})

	t.Run("DomainFields", func(t *testing.T) {
		checks := map[string]Field{
			"algorithm":          Algorithm("wcc"),
			"mode":               Mode("stream"),
			"graph":              GraphName("social"),
			"node_count":         NodeCount(3),
			"relationship_count": RelationshipCount(4),
			"concurrency":        Concurrency(8),
			"job_id":             JobID("abc"),
			"task":               Task("Louvain"),
			"percent":            Percent(10),
			"iterations":         Iterations(2),
			"component":          Component("catalog"),
		}
		for key, f := range checks {
			if f.Key != key {
				t.Errorf("field key = %q, want %q", f.Key, key)
			}
		}
	})
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("algorithm finished", Algorithm("wcc"), NodeCount(10))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != "INFO" {
		t.Errorf("Level = %v, want INFO", e.Level)
	}
	if e.Message != "algorithm finished" {
		t.Errorf("Message = %v", e.Message)
	}
	if e.Fields["algorithm"] != "wcc" {
		t.Errorf("Fields[algorithm] = %v", e.Fields["algorithm"])
	}
	if e.Fields["node_count"] != float64(10) {
		t.Errorf("Fields[node_count] = %v", e.Fields["node_count"])
	}
	if _, err := time.Parse(time.RFC3339Nano, e.Time); err != nil {
		t.Errorf("Time %q is not RFC3339: %v", e.Time, err)
	}
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, InfoLevel).Info("plain")
	if strings.Contains(buf.String(), "fields") {
		t.Errorf("expected no fields key, got %s", buf.String())
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("levels = %s, %s", entries[0].Level, entries[1].Level)
	}
}

func TestJSONLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := NewJSONLogger(&buf, InfoLevel)
	child := parent.With(Algorithm("louvain"))

	parent.SetLevel(ErrorLevel)
	child.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("child ignored parent level change: %s", buf.String())
	}
	if child.GetLevel() != ErrorLevel {
		t.Errorf("child level = %v, want ErrorLevel", child.GetLevel())
	}
}

func TestJSONLogger_WithFieldPrecedence(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel).With(Mode("stats"), Algorithm("pagerank"))

	logger.Info("override", Mode("stream"))

	entries := decodeLines(t, &buf)
	if entries[0].Fields["mode"] != "stream" {
		t.Errorf("mode = %v, want call-site value", entries[0].Fields["mode"])
	}
	if entries[0].Fields["algorithm"] != "pagerank" {
		t.Errorf("algorithm = %v", entries[0].Fields["algorithm"])
	}
}

func TestJSONLogger_ConcurrentChildrenDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	root := NewJSONLogger(&buf, InfoLevel)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			child := root.With(Int("worker", w))
			for i := 0; i < 50; i++ {
				child.Info("tick", Int("i", i))
			}
		}(w)
	}
	wg.Wait()

	if got := len(decodeLines(t, &buf)); got != 400 {
		t.Errorf("got %d entries, want 400", got)
	}
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	l.Info("nothing")
	l.With(String("a", "b")).Error("still nothing")
	if l.GetLevel() <= ErrorLevel {
		t.Errorf("Nop level should be above ErrorLevel")
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	op := StartTimer(logger, "compute", Algorithm("bfs"))
	op.EndError(errors.New("terminated"), Iterations(3))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	e := entries[0]
	if e.Level != "ERROR" || e.Fields["error"] != "terminated" {
		t.Errorf("entry = %+v", e)
	}
	if _, ok := e.Fields["latency_ms"]; !ok {
		t.Error("latency_ms missing")
	}
	if e.Fields["iterations"] != float64(3) {
		t.Errorf("iterations = %v", e.Fields["iterations"])
	}
}

func TestGlobalHelperFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, DebugLevel))
	defer SetDefaultLogger(nil)

	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	ErrorLog("error msg")
	With(GraphName("g")).Info("scoped")

	entries := decodeLines(t, &buf)
	if len(entries) != 5 {
		t.Fatalf("Expected 5 log entries, got %d", len(entries))
	}
	for i, want := range []string{"DEBUG", "INFO", "WARN", "ERROR", "INFO"} {
		if entries[i].Level != want {
			t.Errorf("entry %d level = %v, want %v", i, entries[i].Level, want)
		}
	}
	if entries[4].Fields["graph"] != "g" {
		t.Errorf("scoped graph field = %v", entries[4].Fields["graph"])
	}
}

func TestDefaultLoggerLazyInit(t *testing.T) {
	SetDefaultLogger(nil)
	if DefaultLogger() == nil {
		t.Fatal("DefaultLogger() returned nil")
	}
}
