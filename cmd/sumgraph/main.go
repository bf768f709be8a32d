// Package main is the entry point for the sumgraph command-line tool.
//
// sumgraph reads satellite-to-satellite distance and visibility exports
// (CSV or XLSX) and runs the journey-traversal summarizer over the
// resulting dynamic weighted graph, producing a summary graph of
// foremost-journey edge participation.
//
// # Configuration
//
// Configuration is loaded with the following priority (highest to
// lowest):
//  1. Environment variables (prefix: SUMGRAPH_)
//  2. Config files (config.yaml, config/config.yaml, /etc/sumgraph/config.yaml)
//  3. Default values
//
// # Usage
//
//	sumgraph -config ./config.yaml summarize
//	sumgraph -config ./config.yaml centrality
//	sumgraph -config ./config.yaml validate
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/dabke-research/sumgraph/graph"
	"github.com/dabke-research/sumgraph/integral"
	"github.com/dabke-research/sumgraph/internal/accessor"
	"github.com/dabke-research/sumgraph/internal/adapter"
	"github.com/dabke-research/sumgraph/journey"
	"github.com/dabke-research/sumgraph/pkg/config"
	"github.com/dabke-research/sumgraph/pkg/logger"
	"github.com/dabke-research/sumgraph/pkg/metrics"
	"github.com/dabke-research/sumgraph/pkg/telemetry"
	"github.com/dabke-research/sumgraph/summarize"
	"github.com/dabke-research/sumgraph/summary"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on the port of this address (e.g. :9090), on all interfaces; without a parsable port, metrics.port is used")
	flag.Parse()

	subcommand := "summarize"
	if args := flag.Args(); len(args) > 0 {
		subcommand = args[0]
	}

	var opts []config.LoaderOption
	if *configPath != "" {
		opts = append(opts, config.WithConfigPaths(*configPath))
	}
	cfg, err := config.NewLoader(opts...).Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runID := uuid.NewString()
	runLogger := logger.WithRun(runID)
	runLogger.Info("starting run", "subcommand", subcommand)

	if cfg.Tracing.Enabled {
		tp, err := telemetry.Init(ctx, telemetry.Config{
			Enabled:     cfg.Tracing.Enabled,
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			Environment: cfg.App.Environment,
			SampleRate:  cfg.Tracing.SampleRate,
		})
		if err != nil {
			logger.Log.Warn("failed to init telemetry", "error", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					logger.Log.Warn("failed to shutdown telemetry", "error", err)
				}
			}()
		}
	}

	m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)

	if *metricsAddr != "" {
		port := cfg.Metrics.Port
		if _, p, err := net.SplitHostPort(*metricsAddr); err == nil {
			if n, err := strconv.Atoi(p); err == nil {
				port = n
			}
		}
		go func() {
			if err := metrics.StartMetricsServer(port); err != nil {
				logger.Log.Warn("metrics server stopped", "error", err)
			}
		}()
	}

	dynamicGraph, err := loadDynamicGraph(ctx, cfg.Accessor)
	if err != nil {
		logger.Log.Error("failed to load input data", "error", err)
		os.Exit(1)
	}

	switch subcommand {
	case "summarize":
		if err := runSummarize(ctx, dynamicGraph, cfg); err != nil {
			logger.Log.Error("summarize failed", "error", err)
			os.Exit(1)
		}
	case "centrality":
		if err := runCentrality(ctx, dynamicGraph, cfg); err != nil {
			logger.Log.Error("centrality failed", "error", err)
			os.Exit(1)
		}
	case "validate":
		if err := runValidate(ctx, dynamicGraph, cfg); err != nil {
			logger.Log.Error("validate failed", "error", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q (expected summarize, centrality or validate)\n", subcommand)
		os.Exit(2)
	}
}

func loadDynamicGraph(ctx context.Context, cfg config.AccessorConfig) (*graph.Dynamic, error) {
	var distancesData accessor.DistancesData

	switch cfg.Format {
	case "xlsx":
		a := accessor.NewXLSXDistances(cfg.DistancesPath, "")
		if err := a.Run(ctx); err != nil {
			return nil, err
		}
		distancesData = a.Data()
	default:
		a := accessor.NewCSVDistances(cfg.DistancesPath)
		if err := a.Run(ctx); err != nil {
			return nil, err
		}
		distancesData = a.Data()
	}

	g, err := adapter.DistancesToDynamicGraph(distancesData)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func runSummarize(ctx context.Context, g *graph.Dynamic, cfg *config.Config) error {
	progress := make(chan summarize.Progress, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range progress {
			logger.Log.Info("summarize progress", "completed", p.SamplesCompleted, "total", p.TotalSamples)
		}
	}()

	summaryGraph, err := summarize.Summarize(ctx, g, summarizeConfig(cfg), progress)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	report(summaryGraph)
	return nil
}

func runCentrality(ctx context.Context, g *graph.Dynamic, cfg *config.Config) error {
	summaryGraph, err := summarize.Summarize(ctx, g, summarizeConfig(cfg), nil)
	if err != nil {
		return err
	}

	centralityMap := summary.FromGraph(summaryGraph)
	for _, v := range summaryGraph.Vertices() {
		fmt.Printf("%s\t%f\n", v, centralityMap.VertexWeight(v))
	}
	return nil
}

// runValidate puts the computed summary side by side with measured link
// visibility: an edge that carries many foremost journeys but was rarely
// visible (or vice versa) points at stale input data or a sampling window
// that does not match the export.
func runValidate(ctx context.Context, g *graph.Dynamic, cfg *config.Config) error {
	va := accessor.NewCSVVisibility(cfg.Accessor.VisibilityPath)
	if err := va.Run(ctx); err != nil {
		return err
	}
	measured, err := adapter.VisibilityToSummary(va.Data())
	if err != nil {
		return err
	}

	computed, err := summarize.Summarize(ctx, g, summarizeConfig(cfg), nil)
	if err != nil {
		return err
	}

	for k, w := range computed.Edges() {
		fmt.Printf("%s -> %s: journey participation %f, measured visibility %f%%\n",
			k[0], k[1], w, measured.EdgeWeight(k[0], k[1]))
	}
	return nil
}

func summarizeConfig(cfg *config.Config) summarize.Config {
	return summarize.Config{
		StartTime:  cfg.Summarizer.StartTime,
		EndTime:    cfg.Summarizer.EndTime,
		Iterations: cfg.Summarizer.Iterations,
		Workers:    cfg.Summarizer.Workers,
		Solver: journey.Options{
			Integral: integralConfig(cfg),
			UseHeap:  cfg.Solver.UseHeap,
		},
	}
}

func integralConfig(cfg *config.Config) integral.Config {
	return integral.Config{
		MaxUpperBound: cfg.Solver.MaxUpperBound,
		Tolerance:     cfg.Solver.Tolerance,
		MaxIterations: cfg.Solver.MaxIterations,
	}
}

func report(summaryGraph *summary.Graph) {
	for _, v := range summaryGraph.Vertices() {
		fmt.Printf("%s\n", v)
	}
	for k, w := range summaryGraph.Edges() {
		fmt.Printf("%s -> %s: %f\n", k[0], k[1], w)
	}
}
