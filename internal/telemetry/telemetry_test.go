package telemetry

import (
	"context"
	"testing"
)

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), false)
	if err != nil {
		t.Fatalf("Setup(disabled) error = %v", err)
	}

	_, span := Tracer("test").Start(context.Background(), "test.span")
	if span.SpanContext().IsValid() {
		t.Error("disabled telemetry should produce non-recording spans")
	}
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}
