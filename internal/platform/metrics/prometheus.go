package metrics

import (
	"net/http"
	"strings"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds the service's Prometheus collectors.
// All helper methods are safe to call on a nil manager.
type MetricsManager struct {
	Registry               *prometheus.Registry
	ListingsCreatedTotal   prometheus.Counter
	ListingUpdatesTotal    prometheus.Counter
	ListingDeletesTotal    prometheus.Counter
	ImagesUploadedTotal    prometheus.Counter
	StorageCleanupFailures *prometheus.CounterVec
	EnquiriesCreatedTotal  prometheus.Counter
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestLatency     *prometheus.HistogramVec
}

// NewMetricsManager creates and registers the collectors on a private registry.
func NewMetricsManager(serviceName string) *MetricsManager {
	namespace := strings.ReplaceAll(serviceName, "-", "_")
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		ListingsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_created_total",
			Help:      "Total number of property listings created.",
		}),
		ListingUpdatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_updates_total",
			Help:      "Total number of property listings updated.",
		}),
		ListingDeletesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_deletes_total",
			Help:      "Total number of property listings deleted.",
		}),
		ImagesUploadedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_uploaded_total",
			Help:      "Total number of listing images stored in object storage.",
		}),
		StorageCleanupFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_cleanup_failures_total",
			Help:      "Objects that could not be removed from storage and may be orphaned.",
		}, []string{"operation"}),
		EnquiriesCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enquiries_created_total",
			Help:      "Total number of enquiries submitted.",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		m.ListingsCreatedTotal,
		m.ListingUpdatesTotal,
		m.ListingDeletesTotal,
		m.ImagesUploadedTotal,
		m.StorageCleanupFailures,
		m.EnquiriesCreatedTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *MetricsManager) ListingCreated(images int) {
	if m == nil {
		return
	}
	m.ListingsCreatedTotal.Inc()
	m.ImagesUploadedTotal.Add(float64(images))
}

func (m *MetricsManager) ListingUpdated(newImages int) {
	if m == nil {
		return
	}
	m.ListingUpdatesTotal.Inc()
	m.ImagesUploadedTotal.Add(float64(newImages))
}

func (m *MetricsManager) ListingDeleted() {
	if m == nil {
		return
	}
	m.ListingDeletesTotal.Inc()
}

// CleanupFailed records objects left behind by a best-effort removal.
func (m *MetricsManager) CleanupFailed(operation string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.StorageCleanupFailures.WithLabelValues(operation).Add(float64(count))
}

func (m *MetricsManager) EnquiryCreated() {
	if m == nil {
		return
	}
	m.EnquiriesCreatedTotal.Inc()
}

// Handler exposes the private registry.
func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// StartMetricsServer serves /metrics on its own port. An empty port disables it.
func StartMetricsServer(port string, appLogger *logger.Logger, m *MetricsManager) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))
	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
