package search

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/hyperjump/homematch/internal/models"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	metric, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues: %v", err)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if got := len(m.Collectors()); got != 5 {
		t.Errorf("expected 5 collectors, got %d", got)
	}
}

func TestMetrics_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		m := NewMetrics()
		reg := prometheus.NewRegistry()
		if err := m.Register(reg); err != nil {
			t.Fatalf("Register() returned error: %v", err)
		}

		m.observeSearch(models.StatusOK, 3, true)
		m.observeValidationError(models.ErrInvalidRange)
		m.observeUndefinedBucket(models.FeatureFireplace)

		families, err := reg.Gather()
		if err != nil {
			t.Fatalf("Gather() returned error: %v", err)
		}
		expected := map[string]bool{
			MetricSearchesTotal:         false,
			MetricValidationErrorsTotal: false,
			MetricFeatureSearchesTotal:  false,
			MetricSearchResultRows:      false,
			MetricUndefinedBucketsTotal: false,
		}
		for _, family := range families {
			if _, ok := expected[family.GetName()]; ok {
				expected[family.GetName()] = true
			}
		}
		for name, found := range expected {
			if !found {
				t.Errorf("metric %s not found in gathered metrics", name)
			}
		}
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		if err := NewMetrics().Register(reg); err != nil {
			t.Fatalf("first Register() returned error: %v", err)
		}
		if err := NewMetrics().Register(reg); err == nil {
			t.Error("second Register() should have returned an error")
		}
	})
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.observeSearch(models.StatusOK, 1, false)
	m.observeValidationError(models.ErrInvalidRange)
	m.observeUndefinedBucket(models.FeatureFireplace)
}

func TestEngine_RecordsMetrics(t *testing.T) {
	m := NewMetrics()
	engine := newTestEngine([]*models.Listing{newListing("a", 900)}, WithMetrics(m))

	if _, err := engine.Search(rangeQuery(models.FeatureNaturalLight)); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Search(&models.SearchQuery{Filters: models.Filters{MinRent: 5000, MaxRent: 6000}}); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Search(&models.SearchQuery{Filters: models.Filters{MinRent: 2, MaxRent: 1}}); err == nil {
		t.Fatal("expected validation error")
	}

	if v := counterValue(t, m.searches, string(models.StatusOK)); v != 1 {
		t.Errorf("ok searches = %v, want 1", v)
	}
	if v := counterValue(t, m.searches, string(models.StatusNoResults)); v != 1 {
		t.Errorf("no_results searches = %v, want 1", v)
	}
	if v := counterValue(t, m.validationErrors, ReasonInvalidRange); v != 1 {
		t.Errorf("invalid range errors = %v, want 1", v)
	}
	var fm dto.Metric
	if err := m.featureSearches.Write(&fm); err != nil {
		t.Fatal(err)
	}
	if fm.GetCounter().GetValue() != 1 {
		t.Errorf("feature searches = %v, want 1", fm.GetCounter().GetValue())
	}
}
