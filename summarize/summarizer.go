// Package summarize implements the journey-traversal summarizer: it samples
// a dynamic weighted graph at evenly spaced departure times, solves the
// foremost journey from every vertex at every sample, and accumulates a
// 1/iterations participation fraction along every edge every reconstructed
// path crosses.
package summarize

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/dabke-research/sumgraph/graph"
	"github.com/dabke-research/sumgraph/journey"
	"github.com/dabke-research/sumgraph/pkg/apperror"
	"github.com/dabke-research/sumgraph/pkg/metrics"
	"github.com/dabke-research/sumgraph/pkg/telemetry"
	"github.com/dabke-research/sumgraph/summary"
)

// Config controls the sampling window and the degree of parallelism. The
// window is configurable since a dynamic weighted graph does not
// necessarily model a single calendar day.
type Config struct {
	StartTime float64
	EndTime   float64
	// Iterations is the number of evenly spaced departure-time samples
	// taken across [StartTime, EndTime).
	Iterations int
	// Workers bounds how many samples are solved concurrently. 0 selects
	// runtime.NumCPU, matching the Monte Carlo engine's default.
	Workers int
	// Solver carries the integral-bound tolerances passed through to
	// journey.Solve.
	Solver journey.Options
}

// DefaultConfig samples one simulated day at 1000 evenly spaced
// departure times.
func DefaultConfig() Config {
	return Config{
		StartTime:  0,
		EndTime:    86400,
		Iterations: 1000,
		Workers:    0,
		Solver:     journey.DefaultOptions(),
	}
}

// Progress reports how many samples have been folded into the running
// summary so far, for callers that want to surface progress to a user.
type Progress struct {
	SamplesCompleted int
	TotalSamples     int
}

// Summarize computes a summary graph from dynamicGraph by sampling
// Config.Iterations departure times across [StartTime, EndTime) and solving
// a foremost journey from every vertex at every sample. dynamicGraph must
// use the TraversalTime convention. progress, if non-nil, receives a
// non-blocking best-effort update after each completed sample; callers that
// do not read from it promptly may miss updates.
func Summarize(ctx context.Context, dynamicGraph *graph.Dynamic, cfg Config, progress chan<- Progress) (*summary.Graph, error) {
	ctx, span := telemetry.StartSpan(ctx, "Summarizer.Summarize")
	defer span.End()

	if dynamicGraph.Convention() != graph.TraversalTime {
		err := apperror.New(apperror.CodeWrongConvention,
			"journey traversal summarization only works with the traversal time convention")
		telemetry.SetError(ctx, err)
		return nil, err
	}
	if cfg.Iterations <= 0 {
		err := apperror.New(apperror.CodeInternal, "iterations must be positive")
		telemetry.SetError(ctx, err)
		return nil, err
	}

	m := metrics.Get()
	defer func(start time.Time) {
		m.RecordSummarize(time.Since(start))
	}(time.Now())

	stats := graph.CalculateStatistics(dynamicGraph)
	telemetry.SetAttributes(ctx, telemetry.GraphAttributes(stats.VertexCount, stats.EdgeCount)...)
	m.RecordGraphSize("summarize", stats.VertexCount, stats.EdgeCount)

	vertices := dynamicGraph.Vertices()

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > cfg.Iterations {
		workers = cfg.Iterations
	}

	timeStep := (cfg.EndTime - cfg.StartTime) / float64(cfg.Iterations)
	timeFraction := 1.0 / float64(cfg.Iterations)

	tasks := make(chan int, cfg.Iterations)
	partials := make(chan *summary.Graph, workers)
	errs := make(chan error, workers)
	var completed int64
	var completedMu sync.Mutex

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := summary.New()
			for _, v := range vertices {
				if err := local.AddVertex(v); err != nil {
					errs <- err
					return
				}
			}

			for sampleIndex := range tasks {
				select {
				case <-ctx.Done():
					errs <- apperror.Wrap(ctx.Err(), apperror.CodeCancelled, "summarization cancelled")
					return
				default:
				}

				departure := cfg.StartTime + timeStep*float64(sampleIndex)

				for _, source := range vertices {
					result, err := journey.Solve(ctx, dynamicGraph, source, departure, cfg.Solver)
					if err != nil {
						errs <- err
						return
					}
					if err := accumulatePaths(local, result, timeFraction); err != nil {
						errs <- err
						return
					}
				}

				m.RecordSample()
				telemetry.AddEvent(ctx, "sample completed",
					telemetry.SampleAttributes(sampleIndex, departure)...)

				completedMu.Lock()
				completed++
				n := completed
				completedMu.Unlock()
				if progress != nil {
					select {
					case progress <- Progress{SamplesCompleted: int(n), TotalSamples: cfg.Iterations}:
					default:
					}
				}
			}

			partials <- local
		}()
	}

	for i := 0; i < cfg.Iterations; i++ {
		tasks <- i
	}
	close(tasks)

	wg.Wait()
	close(partials)
	close(errs)

	if err := <-errs; err != nil {
		telemetry.SetError(ctx, err)
		return nil, err
	}

	result := summary.New()
	for _, v := range vertices {
		if err := result.AddVertex(v); err != nil {
			return nil, err
		}
	}
	for local := range partials {
		merged, err := summary.Sum(result, local)
		if err != nil {
			return nil, err
		}
		result = merged
	}

	return result, nil
}

// accumulatePaths walks every reachable vertex's reconstructed path from
// result and increments each crossed edge's weight by delta.
func accumulatePaths(into *summary.Graph, result *journey.Result, delta float64) error {
	for target := range result.Arrival {
		path, err := journey.Path(result, target)
		if err != nil {
			return err
		}
		for i := 0; i+1 < len(path); i++ {
			if err := into.Increment(path[i], path[i+1], delta); err != nil {
				return err
			}
		}
	}
	return nil
}
