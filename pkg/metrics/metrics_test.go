package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectors_ObserveFetch(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.ObserveFetch("list_users", OutcomeSuccess, 20*time.Millisecond)
	c.ObserveFetch("list_users", OutcomeSuccess, 30*time.Millisecond)
	c.ObserveFetch("get_user", OutcomeNotFound, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.fetchTotal.WithLabelValues("list_users", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fetchTotal.WithLabelValues("get_user", OutcomeNotFound)))
}

func TestCollectors_ObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.ObserveRequest("GET", "/", 200, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requestTotal.WithLabelValues("GET", "/", "200")))
}

func TestNew_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := New(reg)
	second := New(reg)

	first.ObserveRateLimited("/")
	second.ObserveRateLimited("/")

	assert.Equal(t, 2.0, testutil.ToFloat64(second.rateLimitHits.WithLabelValues("/")))
}

func TestCollectors_NilSafe(t *testing.T) {
	var c *Collectors

	assert.NotPanics(t, func() {
		c.ObserveRequest("GET", "/", 200, time.Millisecond)
		c.ObserveFetch("list_users", OutcomeError, time.Millisecond)
		c.ObserveRateLimited("/")
	})
}
