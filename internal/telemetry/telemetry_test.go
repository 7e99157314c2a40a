package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	require.False(t, Enabled())

	shutdown, err := Setup(context.Background())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNoopTracerSpansDoNotRecord(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "test")
	defer span.End()
	assert.False(t, span.IsRecording())
	assert.NotNil(t, Tracer("world"))
}
