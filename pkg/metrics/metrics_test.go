package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

func TestCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("GET", "/api/community/posts", 200, 15*time.Millisecond)
	c.RecordRequest("GET", "/api/community/posts", 200, 5*time.Millisecond)
	c.SetOnlineClients(3)
	c.RecordEventBroadcast("new_post")
	c.RecordGameCompleted("Mild")
	c.RecordRiskEvent("high")

	requests := findFamily(t, reg, "wellness_http_requests_total")
	require.NotNil(t, requests)
	require.Len(t, requests.GetMetric(), 1)
	assert.Equal(t, 2.0, requests.GetMetric()[0].GetCounter().GetValue())

	online := findFamily(t, reg, "wellness_ws_online_clients")
	require.NotNil(t, online)
	assert.Equal(t, 3.0, online.GetMetric()[0].GetGauge().GetValue())

	for _, name := range []string{
		"wellness_http_request_duration_seconds",
		"wellness_ws_events_total",
		"wellness_game_sessions_completed_total",
		"wellness_risk_events_total",
	} {
		assert.NotNil(t, findFamily(t, reg, name), name)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordEventBroadcast("post_update")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `wellness_ws_events_total{type="post_update"} 1`))
}
