package otel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
)

func TestInitDisabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")

	shutdown, err := Init(context.Background(), time.UTC)
	assert.NoError(t, err)
	assert.NotNil(t, shutdown)

	// propagator must be installed even with tracing off
	assert.NotNil(t, otel.GetTextMapPropagator())
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitUnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")

	shutdown, err := Init(context.Background(), time.UTC)
	assert.NoError(t, err)
	assert.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestGetSampler(t *testing.T) {
	tests := []struct {
		name    string
		sampler string
		arg     string
		want    string
	}{
		{"default", "", "", "ParentBased{root:AlwaysOnSampler"},
		{"always on", "always_on", "", "AlwaysOnSampler"},
		{"always off", "always_off", "", "AlwaysOffSampler"},
		{"ratio", "traceidratio", "0.25", "TraceIDRatioBased{0.25}"},
		{"parent ratio", "parentbased_traceidratio", "0.5", "ParentBased{root:TraceIDRatioBased{0.5}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OTEL_TRACES_SAMPLER", tt.sampler)
			t.Setenv("OTEL_TRACES_SAMPLER_ARG", tt.arg)

			got := getSampler()
			assert.Contains(t, got.Description(), tt.want)
		})
	}
}
