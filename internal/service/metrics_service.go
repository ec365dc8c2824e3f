package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the advisor.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	warehouseDuration *prometheus.HistogramVec
	buildDuration     prometheus.Histogram
	coursesScheduled  prometheus.Counter
	coursesSkipped    prometheus.Counter
}

// NewMetricsService registers the advisor's Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	warehouseDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "warehouse_query_duration_seconds",
		Help:    "Duration of course-warehouse queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	buildDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_build_duration_seconds",
		Help:    "Duration of schedule assembly runs",
		Buckets: prometheus.DefBuckets,
	})

	coursesScheduled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_courses_total",
		Help: "Total courses placed into finalized schedules",
	})

	coursesSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_courses_skipped_total",
		Help: "Total courses skipped during schedule assembly",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, warehouseDuration, buildDuration, coursesScheduled, coursesSkipped, goroutines)

	return &MetricsService{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		warehouseDuration: warehouseDuration,
		buildDuration:     buildDuration,
		coursesScheduled:  coursesScheduled,
		coursesSkipped:    coursesSkipped,
	}
}

// Handler exposes the registry for the /metrics endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records a completed HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveWarehouseQuery records a warehouse query duration.
func (s *MetricsService) ObserveWarehouseQuery(query string, duration time.Duration) {
	s.warehouseDuration.WithLabelValues(query).Observe(duration.Seconds())
}

// ObserveScheduleBuild records a schedule assembly run.
func (s *MetricsService) ObserveScheduleBuild(duration time.Duration, scheduled, skipped int) {
	s.buildDuration.Observe(duration.Seconds())
	s.coursesScheduled.Add(float64(scheduled))
	s.coursesSkipped.Add(float64(skipped))
}
