// Package metrics exposes Prometheus instrumentation for the HTTP layer, the
// realtime hub and the screening game.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the instrumentation surface used by services and middleware.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	SetOnlineClients(n int)
	RecordEventBroadcast(eventType string)
	RecordGameCompleted(interpretation string)
	RecordRiskEvent(riskLevel string)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	onlineClients prometheus.Gauge
	broadcasts    *prometheus.CounterVec
	gamesDone     *prometheus.CounterVec
	riskEvents    *prometheus.CounterVec
}

// NewCollector builds the collector and registers it on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wellness_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wellness_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		onlineClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wellness_ws_online_clients",
			Help: "Currently connected websocket clients.",
		}),
		broadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wellness_ws_events_total",
			Help: "Realtime events broadcast by type.",
		}, []string{"type"}),
		gamesDone: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wellness_game_sessions_completed_total",
			Help: "Completed screening sessions by interpretation.",
		}, []string{"interpretation"}),
		riskEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wellness_risk_events_total",
			Help: "Reported risk events by level.",
		}, []string{"risk_level"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.onlineClients,
		c.broadcasts,
		c.gamesDone,
		c.riskEvents,
	)

	return c
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) SetOnlineClients(n int) {
	c.onlineClients.Set(float64(n))
}

func (c *Collector) RecordEventBroadcast(eventType string) {
	c.broadcasts.WithLabelValues(eventType).Inc()
}

func (c *Collector) RecordGameCompleted(interpretation string) {
	c.gamesDone.WithLabelValues(interpretation).Inc()
}

func (c *Collector) RecordRiskEvent(riskLevel string) {
	c.riskEvents.WithLabelValues(riskLevel).Inc()
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) SetOnlineClients(int)                             {}
func (Nop) RecordEventBroadcast(string)                      {}
func (Nop) RecordGameCompleted(string)                       {}
func (Nop) RecordRiskEvent(string)                           {}

// Handler serves the scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
