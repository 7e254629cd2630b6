package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samirrijal/geofences/internal/pkg/telemetry"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func TestStartSpan_RecordsAttributes(t *testing.T) {
	rec := withRecorder(t)

	_, span := telemetry.StartSpan(context.Background(), "GeofenceRepo.List",
		attribute.String("db.operation", "select"))
	telemetry.EndSpan(span, nil)

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "GeofenceRepo.List" {
		t.Errorf("unexpected span name %s", spans[0].Name())
	}
	if spans[0].Status().Code == codes.Error {
		t.Error("expected non-error status")
	}
	found := false
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "db.operation" && kv.Value.AsString() == "select" {
			found = true
		}
	}
	if !found {
		t.Error("expected db.operation attribute")
	}
}

func TestEndSpan_RecordsError(t *testing.T) {
	rec := withRecorder(t)

	_, span := telemetry.StartSpan(context.Background(), "GeofenceRepo.Insert")
	telemetry.EndSpan(span, errors.New("connection refused"))

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status().Code)
	}
	if len(spans[0].Events()) == 0 {
		t.Error("expected recorded error event")
	}
}
