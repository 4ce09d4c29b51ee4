package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveGeneration("blooms_taxonomy", "ok", 2*time.Second)
	m.ObserveGeneration("blooms_taxonomy", "error", time.Second)
	m.ObserveGeneration("blooms_taxonomy", "ok", time.Second)
	m.ObserveRender("blooms_taxonomy", "content")
	m.ObserveHTTP("GET", "/", "200", time.Millisecond)
	m.ObserveCatalog("fallback")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generations.WithLabelValues("blooms_taxonomy", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("blooms_taxonomy", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.renders.WithLabelValues("blooms_taxonomy", "content")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogSrc.WithLabelValues("fallback")))
}

func TestMetrics_WebSocketGauge(t *testing.T) {
	m := New()
	m.WebSocketOpened()
	m.WebSocketOpened()
	m.WebSocketClosed()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.wsActive))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveGeneration("x", "ok", time.Second)
		m.ObserveRender("x", "none")
		m.ObserveHTTP("GET", "/", "200", time.Second)
		m.ObserveCatalog("cache")
		m.WebSocketOpened()
		m.WebSocketClosed()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRender("generic", "content")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `pedagogy_studio_renders_total{layout="generic",state="content"} 1`)
}
