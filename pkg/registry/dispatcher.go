package registry

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/dd0wney/cluso-gds/pkg/algorithms"
	"github.com/dd0wney/cluso-gds/pkg/catalog"
	"github.com/dd0wney/cluso-gds/pkg/concurrency"
	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/metrics"
	"github.com/dd0wney/cluso-gds/pkg/progress"
	"github.com/dd0wney/cluso-gds/pkg/results"
)

// ErrMissingExporter is returned for write requests without an exporter
var ErrMissingExporter = errors.New("write mode needs an exporter")

// Request is one algorithm call against a catalog graph.
type Request struct {
	Algorithm string
	Graph     string
	Mode      results.Mode
	Config    RawConfig

	// Property and RelationshipType name what mutate adds; TargetGraph
	// receives the mutated snapshot and defaults to Graph
	Property         string
	RelationshipType string
	TargetGraph      string

	// Exporter and Table are required in write mode
	Exporter results.Exporter
	Table    string
}

// Response carries the output of exactly one mode. Rows is lazy and may be
// ranged over more than once.
type Response struct {
	Algorithm string
	Mode      results.Mode
	JobID     string

	Columns []string
	Rows    iter.Seq[results.Row]
	Stats   results.Summary

	Mutate   *results.MutateResult
	Write    *results.WriteResult
	Estimate *algorithms.MemoryRange
}

// Dispatcher resolves requests against a catalog and a registry. Nil
// collaborators fall back to the process defaults or no-ops.
type Dispatcher struct {
	Catalog  *catalog.Catalog
	Registry *Registry
	Logger   logging.Logger
	Metrics  *metrics.Registry
	Tasks    *progress.TaskRegistry
}

func (d *Dispatcher) catalog() *catalog.Catalog {
	if d.Catalog == nil {
		return catalog.Default()
	}
	return d.Catalog
}

func (d *Dispatcher) registry() *Registry {
	if d.Registry == nil {
		return Default()
	}
	return d.Registry
}

func (d *Dispatcher) logger() logging.Logger {
	if d.Logger == nil {
		return logging.NopLogger()
	}
	return d.Logger
}

// Dispatch runs req. The algorithm computes at most once; every mode other
// than estimate reads the same result. ctx cancellation trips the
// termination flag of the run.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Response, error) {
	mode, err := results.ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}
	if mode == results.ModeWrite && req.Exporter == nil {
		return nil, ErrMissingExporter
	}

	proc, err := d.registry().Lookup(req.Algorithm)
	if err != nil {
		return nil, err
	}
	store, err := d.catalog().Get(req.Graph)
	if err != nil {
		return nil, err
	}
	logger := d.logger().With(logging.Algorithm(proc.Name), logging.GraphName(req.Graph), logging.Mode(string(mode)))
	resp := &Response{Algorithm: proc.Name, Mode: mode}

	if mode == results.ModeEstimate {
		est, err := proc.Estimate(store, req.Config, d.Metrics)
		if err != nil {
			return nil, err
		}
		logger.Debug("memory estimated", logging.String("estimate", est.String()))
		resp.Estimate = &est
		return resp, nil
	}

	tracker := progress.NewTaskTracker(progress.TrackerConfig{
		Algorithm: proc.Name,
		Logger:    logger,
		Metrics:   d.Metrics,
		Registry:  d.Tasks,
	})
	resp.JobID = tracker.JobID()
	exec := &algorithms.Execution{
		Termination: concurrency.NewTerminationFlag(ctx),
		Tracker:     tracker,
		Logger:      logger,
		Metrics:     d.Metrics,
		Mode:        string(mode),
	}

	b, err := proc.Compute(ctx, store, req.Config, exec)
	if err != nil {
		return nil, err
	}

	switch mode {
	case results.ModeStream:
		resp.Columns = b.Columns()
		resp.Rows = b.Stream()
	case results.ModeStats:
		resp.Stats = b.Stats()
	case results.ModeMutate:
		res, err := results.Mutate(d.catalog(), results.MutateRequest{
			SourceGraph:      req.Graph,
			TargetGraph:      req.TargetGraph,
			Property:         req.Property,
			RelationshipType: req.RelationshipType,
		}, b, d.Metrics)
		if err != nil {
			return nil, fmt.Errorf("mutate %s: %w", req.Graph, err)
		}
		logger.Info("graph mutated", logging.String("target", res.Graph))
		resp.Mutate = &res
		resp.Stats = b.Stats()
	case results.ModeWrite:
		table := req.Table
		if table == "" {
			table = proc.Name
		}
		res, err := results.Write(ctx, req.Exporter, table, b, d.Metrics)
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", table, err)
		}
		logger.Info("result written", logging.String("table", res.Table), logging.Int("rows", res.RowsWritten))
		resp.Write = &res
		resp.Stats = b.Stats()
	}
	return resp, nil
}

// Stream is Dispatch in stream mode
func (d *Dispatcher) Stream(ctx context.Context, req Request) (*Response, error) {
	req.Mode = results.ModeStream
	return d.Dispatch(ctx, req)
}

// Stats is Dispatch in stats mode
func (d *Dispatcher) Stats(ctx context.Context, req Request) (*Response, error) {
	req.Mode = results.ModeStats
	return d.Dispatch(ctx, req)
}

// Mutate is Dispatch in mutate mode
func (d *Dispatcher) Mutate(ctx context.Context, req Request) (*Response, error) {
	req.Mode = results.ModeMutate
	return d.Dispatch(ctx, req)
}

// Write is Dispatch in write mode
func (d *Dispatcher) Write(ctx context.Context, req Request) (*Response, error) {
	req.Mode = results.ModeWrite
	return d.Dispatch(ctx, req)
}

// Estimate is Dispatch in estimate mode; nothing is computed
func (d *Dispatcher) Estimate(ctx context.Context, req Request) (*Response, error) {
	req.Mode = results.ModeEstimate
	return d.Dispatch(ctx, req)
}

// DispatchAll runs reqs on a pool of workers and returns the responses in
// request order. Failed requests leave a nil response; their errors are
// joined. A panicking algorithm fails only its own request.
func (d *Dispatcher) DispatchAll(ctx context.Context, reqs []Request, workers int) ([]*Response, error) {
	pool, err := concurrency.NewWorkerPool(workers)
	if err != nil {
		return nil, err
	}
	if d.Metrics != nil {
		pool.OnPanic = func(any) { d.Metrics.RecordWorkerPanic() }
	}

	out := make([]*Response, len(reqs))
	for i, req := range reqs {
		err := pool.Submit(func() error {
			resp, err := d.Dispatch(ctx, req)
			if d.Metrics != nil {
				status := metrics.StatusSuccess
				if err != nil {
					status = metrics.StatusError
				}
				d.Metrics.RecordWorkerTask(status)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", req.Algorithm, err)
			}
			out[i] = resp
			return nil
		})
		if err != nil {
			break
		}
	}
	return out, pool.Wait()
}
