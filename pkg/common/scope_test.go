package common

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScopeRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(previous)

	scope := NewScope(context.Background(), "battle.fight")
	scope.SetAttributes("opponent", "IronGuard")
	scope.SetAttributes("level", 8)
	scope.TraceEvent("resolved")

	child := scope.NewChildScope("progression.reward")
	child.TraceError(errors.New("boom"))
	child.Finish()
	scope.Finish()

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, expected 2", len(spans))
	}
	if spans[0].Name() != "progression.reward" {
		t.Errorf("first span = %s, expected progression.reward", spans[0].Name())
	}
	if spans[1].Name() != "battle.fight" {
		t.Errorf("second span = %s, expected battle.fight", spans[1].Name())
	}
	if spans[0].Parent().SpanID() != spans[1].SpanContext().SpanID() {
		t.Error("child span should be parented to the scope span")
	}
	if child.TraceID != scope.TraceID {
		t.Errorf("child TraceID = %s, expected %s", child.TraceID, scope.TraceID)
	}
}

func TestNewTracerProvider_NoEndpoint(t *testing.T) {
	provider, err := NewTracerProvider("FocusWarrior", "test", 0, "")
	if err != nil {
		t.Fatalf("NewTracerProvider() error = %v", err)
	}
	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
