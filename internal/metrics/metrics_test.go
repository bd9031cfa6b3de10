package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_Counters(t *testing.T) {
	r := NewRegistry()

	r.ObserveUpstream("erp", "GetOrders", 0.01, nil)
	r.ObserveUpstream("erp", "GetOrders", 0.02, errors.New("boom"))
	r.Miss("catalog")
	r.Miss("catalog")
	r.Renewal(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(r.UpstreamRequests.WithLabelValues("erp", "GetOrders", OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.UpstreamRequests.WithLabelValues("erp", "GetOrders", OutcomeError)))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.EnrichmentMisses.WithLabelValues("catalog")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.SessionRenewals.WithLabelValues(OutcomeError)))
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.ObserveUpstream("erp", "GetOrders", 0, nil)
		r.Miss("status")
		r.Renewal(true)
	})
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.Miss("comment")

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "myorders_enrichment_misses_total")
}
