package algorithms

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dd0wney/cluso-gds/pkg/graphstore"
	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/metrics"
)

var tracer = otel.Tracer("gds.algorithms")

// Run validates cfg, checks the termination flag and computes alg over
// store. Every failure comes back as an *Error. A tripped flag yields a
// KindCancelled error and never a partial result.
func Run[C Config, R any](ctx context.Context, alg Algorithm[C, R], store *graphstore.GraphStore, cfg C, exec *Execution) (R, error) {
	var zero R
	exec = exec.WithDefaults()
	name := alg.Name()
	mode := exec.Mode
	if mode == "" {
		mode = "stream"
	}

	_, span := tracer.Start(ctx, "algorithms."+name,
		trace.WithAttributes(
			attribute.String("algorithm", name),
			attribute.String("mode", mode),
			attribute.Int("node_count", store.NodeCount()),
			attribute.Int("relationship_count", store.RelationshipCount()),
			attribute.Int("concurrency", cfg.Base().Concurrency),
		),
	)
	defer span.End()

	logger := exec.Logger.With(logging.Algorithm(name), logging.Mode(mode))

	if err := cfg.Validate(); err != nil {
		err = Wrap(name, err)
		logger.Warn("invalid configuration", logging.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return zero, err
	}

	if err := exec.Termination.AssertRunning(); err != nil {
		err = NewError(name).Kind(KindCancelled).Context("terminated before start").Cause(err).Err()
		span.AddEvent("terminated_before_start")
		span.SetStatus(codes.Error, err.Error())
		return zero, err
	}

	timer := logging.StartTimer(logger, "algorithm finished",
		logging.NodeCount(store.NodeCount()),
		logging.RelationshipCount(store.RelationshipCount()),
		logging.Concurrency(cfg.Base().Concurrency))
	logger.Info("algorithm started", logging.NodeCount(store.NodeCount()))
	if exec.Metrics != nil {
		exec.Metrics.AlgorithmStarted(name, mode)
	}

	result, err := alg.Compute(store, cfg, exec)
	status := metrics.StatusSuccess
	if err != nil {
		err = Wrap(name, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if IsCancelled(err) {
			status = metrics.StatusTerminated
			span.SetAttributes(attribute.Bool("terminated", true))
			timer.EndWarn("algorithm cancelled")
		} else {
			status = metrics.StatusError
			timer.EndError(err, logging.String("kind", KindOf(err).String()))
		}
	} else {
		span.SetStatus(codes.Ok, "")
		timer.End()
	}
	if exec.Metrics != nil {
		exec.Metrics.RecordAlgorithmRun(name, mode, status, timer.Elapsed())
		if err == nil {
			exec.Metrics.RecordNodesProcessed(name, store.NodeCount())
		}
	}
	if err != nil {
		return zero, err
	}
	return result, nil
}

// Estimate returns the memory estimate of alg for cfg and records it.
func Estimate[C Config, R any](alg Algorithm[C, R], store *graphstore.GraphStore, cfg C, m *metrics.Registry) (MemoryRange, error) {
	if err := cfg.Validate(); err != nil {
		return MemoryRange{}, Wrap(alg.Name(), err)
	}
	est := alg.Estimate(store, cfg)
	if m != nil {
		m.RecordMemoryEstimate(alg.Name(), est.Max)
	}
	return est, nil
}
