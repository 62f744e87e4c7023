package server

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/AccelByte/extend-focus-warrior/pkg/metrics"

	"go.opentelemetry.io/otel"
)

func TestMetricsServer_ServesGameMetrics(t *testing.T) {
	m := NewMetricsServer(0, "/metrics")
	if err := m.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer m.Shutdown(context.Background())

	metrics.SessionsCompletedTotal.Inc()

	resp, err := http.Get("http://" + m.Addr() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, expected 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	for _, name := range []string{"focus_warrior_sessions_completed_total", "go_goroutines"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

func TestMetricsServer_ShutdownWithoutSetup(t *testing.T) {
	m := NewMetricsServer(8080, "/metrics")
	if err := m.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if m.Addr() != "" {
		t.Errorf("Addr() = %q, expected empty before Start", m.Addr())
	}
}

func TestSetupTelemetry(t *testing.T) {
	previous := otel.GetTracerProvider()
	defer otel.SetTracerProvider(previous)

	shutdown, err := SetupTelemetry(context.Background(), "FocusWarrior", "test", 0, "")
	if err != nil {
		t.Fatalf("SetupTelemetry() error = %v", err)
	}
	if otel.GetTracerProvider() == previous {
		t.Error("SetupTelemetry() should install a tracer provider")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}
