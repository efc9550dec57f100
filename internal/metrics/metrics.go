// Package metrics exposes plant counters and gauges on a private Prometheus
// registry. All methods are safe on a nil *Metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg *prometheus.Registry

	alarmsAcknowledged prometheus.Counter
	exports            *prometheus.CounterVec
	telemetryTicks     *prometheus.CounterVec
	activeAlarms       prometheus.Gauge
	telemetryLive      prometheus.Gauge
	wsClients          prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		alarmsAcknowledged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plant_alarms_acknowledged_total",
			Help: "Alarms moved from Active to Acknowledged.",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plant_exports_total",
			Help: "Files produced by the export endpoints.",
		}, []string{"format"}),
		telemetryTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plant_telemetry_ticks_total",
			Help: "Simulated telemetry updates applied.",
		}, []string{"target"}),
		activeAlarms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "plant_alarms_active",
			Help: "Alarms currently in the Active state.",
		}),
		telemetryLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "plant_telemetry_live",
			Help: "1 while the KPI updater is running, 0 while idle.",
		}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "plant_ws_clients",
			Help: "Open KPI WebSocket connections.",
		}),
	}
	m.reg.MustRegister(
		m.alarmsAcknowledged,
		m.exports,
		m.telemetryTicks,
		m.activeAlarms,
		m.telemetryLive,
		m.wsClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) AlarmsAcknowledged(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.alarmsAcknowledged.Add(float64(n))
}

func (m *Metrics) SetActiveAlarms(n int) {
	if m == nil {
		return
	}
	m.activeAlarms.Set(float64(n))
}

func (m *Metrics) Exported(format string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format).Inc()
}

// TelemetryTick counts one updater pass; target is "kpis" or "machines".
func (m *Metrics) TelemetryTick(target string) {
	if m == nil {
		return
	}
	m.telemetryTicks.WithLabelValues(target).Inc()
}

func (m *Metrics) SetTelemetryLive(live bool) {
	if m == nil {
		return
	}
	if live {
		m.telemetryLive.Set(1)
		return
	}
	m.telemetryLive.Set(0)
}

func (m *Metrics) WSConnected() {
	if m != nil {
		m.wsClients.Inc()
	}
}

func (m *Metrics) WSDisconnected() {
	if m != nil {
		m.wsClients.Dec()
	}
}
