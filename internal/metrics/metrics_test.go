package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountersAndGauges(t *testing.T) {
	m := New()

	m.AlarmsAcknowledged(2)
	m.AlarmsAcknowledged(0)
	if got := testutil.ToFloat64(m.alarmsAcknowledged); got != 2 {
		t.Fatalf("acknowledged: want 2, got %f", got)
	}

	m.Exported("csv")
	m.Exported("csv")
	m.Exported("pptx")
	if got := testutil.ToFloat64(m.exports.WithLabelValues("csv")); got != 2 {
		t.Fatalf("csv exports: want 2, got %f", got)
	}

	m.SetActiveAlarms(3)
	if got := testutil.ToFloat64(m.activeAlarms); got != 3 {
		t.Fatalf("active alarms: want 3, got %f", got)
	}

	m.SetTelemetryLive(true)
	if got := testutil.ToFloat64(m.telemetryLive); got != 1 {
		t.Fatalf("live: want 1, got %f", got)
	}
	m.SetTelemetryLive(false)
	if got := testutil.ToFloat64(m.telemetryLive); got != 0 {
		t.Fatalf("live: want 0, got %f", got)
	}

	m.WSConnected()
	m.WSConnected()
	m.WSDisconnected()
	if got := testutil.ToFloat64(m.wsClients); got != 1 {
		t.Fatalf("ws clients: want 1, got %f", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.AlarmsAcknowledged(1)
	m.Exported("xlsx")
	m.TelemetryTick("kpis")
	m.SetActiveAlarms(1)
	m.SetTelemetryLive(true)
	m.WSConnected()
	m.WSDisconnected()
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.TelemetryTick("kpis")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `plant_telemetry_ticks_total{target="kpis"} 1`) {
		t.Fatalf("exposition missing tick counter:\n%s", body)
	}
}
