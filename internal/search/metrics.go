package search

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hyperjump/homematch/internal/models"
)

// Metric names.
const (
	MetricSearchesTotal         = "homematch_searches_total"
	MetricValidationErrorsTotal = "homematch_search_validation_errors_total"
	MetricFeatureSearchesTotal  = "homematch_feature_searches_total"
	MetricSearchResultRows      = "homematch_search_result_rows"
	MetricUndefinedBucketsTotal = "homematch_undefined_buckets_total"
)

// Validation reasons used as label values.
const (
	ReasonInvalidRange     = "invalid_range"
	ReasonInvalidPlatform  = "invalid_platform_filter"
	ReasonUnknownFeature   = "unknown_feature"
	ReasonDuplicateFeature = "duplicate_preference"
	ReasonOther            = "other"
)

// Metrics contains Prometheus metrics for search operations.
// All operations are thread-safe.
type Metrics struct {
	searches         *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
	featureSearches  prometheus.Counter
	resultRows       prometheus.Histogram
	undefinedBuckets *prometheus.CounterVec
}

// NewMetrics creates and returns a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricSearchesTotal,
				Help: "Total number of executed searches by outcome status",
			},
			[]string{"status"},
		),
		validationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricValidationErrorsTotal,
				Help: "Total number of searches rejected by validation, by reason",
			},
			[]string{"reason"},
		),
		featureSearches: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricFeatureSearchesTotal,
				Help: "Total number of searches ranked by at least one feature preference",
			},
		),
		resultRows: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricSearchResultRows,
				Help:    "Histogram of rows remaining after hard filtering",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 1500, 5000},
			},
		),
		undefinedBuckets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricUndefinedBucketsTotal,
				Help: "Total number of displayed feature scores outside the bucket domain, by feature",
			},
			[]string{"feature"},
		),
	}
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns all Prometheus collectors.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.searches,
		m.validationErrors,
		m.featureSearches,
		m.resultRows,
		m.undefinedBuckets,
	}
}

func (m *Metrics) observeSearch(status models.Status, filteredRows int, featureSearch bool) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(string(status)).Inc()
	m.resultRows.Observe(float64(filteredRows))
	if featureSearch {
		m.featureSearches.Inc()
	}
}

func (m *Metrics) observeValidationError(err error) {
	if m == nil {
		return
	}
	m.validationErrors.WithLabelValues(validationReason(err)).Inc()
}

func (m *Metrics) observeUndefinedBucket(f models.Feature) {
	if m == nil {
		return
	}
	m.undefinedBuckets.WithLabelValues(string(f)).Inc()
}

func validationReason(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidRange):
		return ReasonInvalidRange
	case errors.Is(err, models.ErrInvalidPlatformFilter):
		return ReasonInvalidPlatform
	case errors.Is(err, models.ErrUnknownFeature):
		return ReasonUnknownFeature
	case errors.Is(err, models.ErrDuplicatePreference):
		return ReasonDuplicateFeature
	default:
		return ReasonOther
	}
}
