package observability

import (
	"context"
	"errors"
	"testing"
)

func TestNopTracer(t *testing.T) {
	tracer := NopTracer()
	ctx := context.Background()
	ctx2, span := tracer.StartSpan(ctx, "mosaic")
	if ctx2 != ctx {
		t.Fatalf("nop tracer should return same context")
	}
	span.SetTag("sources", 2)
	span.SetError(nil)
	span.Finish()
}

func TestNopLogger(t *testing.T) {
	var log Logger = NopLogger{}
	log = log.With(String("operation", "mosaic"))
	log.Info("ignored", Int(MetricSourceCount, 3))
	log.Error("ignored", Error("error", errors.New("boom")))
}

func TestFields(t *testing.T) {
	cases := []struct {
		field Field
		key   string
	}{
		{String("name", "mosaic"), "name"},
		{Int(MetricPixelCount, 100), MetricPixelCount},
		{Float64(MetricMosaicTime, 1.5), MetricMosaicTime},
		{Error("error", errors.New("boom")), "error"},
	}
	for _, tc := range cases {
		if tc.field.Key() != tc.key {
			t.Fatalf("field key %q, want %q", tc.field.Key(), tc.key)
		}
		if tc.field.Value() == nil {
			t.Fatalf("field %q has nil value", tc.key)
		}
	}
}
