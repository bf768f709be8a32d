package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics глобальный контейнер метрик
type Metrics struct {
	// Солвер (поиск ближайшего кратчайшего по времени маршрута)
	SolverInvocationsTotal        *prometheus.CounterVec
	SolverDuration                *prometheus.HistogramVec
	IntegralBoundUnreachableTotal prometheus.Counter

	// Суммаризатор (выборка по времени и накопление сводного графа)
	SamplesProcessedTotal prometheus.Counter
	SummarizeDuration     prometheus.Histogram
	GraphVerticesTotal    *prometheus.HistogramVec
	GraphEdgesTotal       *prometheus.HistogramVec

	// Системные метрики
	MemoryUsage *prometheus.GaugeVec
	Goroutines  prometheus.Gauge

	// Информация о запуске
	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics инициализирует метрики
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		SolverInvocationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solver_invocations_total",
				Help:      "Total number of foremost-journey solve invocations",
			},
			[]string{"status"},
		),

		SolverDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solver_duration_seconds",
				Help:      "Duration of a single foremost-journey solve",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"status"},
		),

		IntegralBoundUnreachableTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "integral_bound_unreachable_total",
				Help:      "Total number of integral-bound searches that exhausted max_upper_bound",
			},
		),

		SamplesProcessedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "samples_processed_total",
				Help:      "Total number of time samples processed by the summarizer",
			},
		),

		SummarizeDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "summarize_duration_seconds",
				Help:      "Duration of a full journey-traversal summarization run",
				Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 300, 600},
			},
		),

		GraphVerticesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_vertices_total",
				Help:      "Number of vertices in processed graphs",
				Buckets:   []float64{2, 5, 10, 50, 100, 500, 1000, 5000},
			},
			[]string{"operation"},
		),

		GraphEdgesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_edges_total",
				Help:      "Number of edges in processed graphs",
				Buckets:   []float64{2, 10, 50, 100, 500, 1000, 5000, 10000},
			},
			[]string{"operation"},
		),

		MemoryUsage: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "memory_usage_bytes",
				Help:      "Current memory usage",
			},
			[]string{"type"},
		),

		Goroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "goroutines",
				Help:      "Current number of goroutines",
			},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Run information",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

// Get возвращает глобальные метрики
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("sumgraph", "")
	}
	return defaultMetrics
}

// RecordSolverInvocation записывает метрики одного вызова солвера
func (m *Metrics) RecordSolverInvocation(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	m.SolverInvocationsTotal.WithLabelValues(status).Inc()
	m.SolverDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordIntegralBoundUnreachable увеличивает счётчик поисков, исчерпавших max_upper_bound
func (m *Metrics) RecordIntegralBoundUnreachable() {
	m.IntegralBoundUnreachableTotal.Inc()
}

// RecordSample записывает обработку одной временной выборки суммаризатором
func (m *Metrics) RecordSample() {
	m.SamplesProcessedTotal.Inc()
}

// RecordSummarize записывает длительность полного прогона суммаризации
func (m *Metrics) RecordSummarize(duration time.Duration) {
	m.SummarizeDuration.Observe(duration.Seconds())
}

// RecordGraphSize записывает размер графа
func (m *Metrics) RecordGraphSize(operation string, vertices, edges int) {
	m.GraphVerticesTotal.WithLabelValues(operation).Observe(float64(vertices))
	m.GraphEdgesTotal.WithLabelValues(operation).Observe(float64(edges))
}

// SetServiceInfo устанавливает информацию о запуске
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler возвращает HTTP handler для /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer запускает HTTP сервер для метрик
func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK")) //nolint:errcheck // health endpoint, ошибка записи не критична
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
