package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), "designer", "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestTracersStartSpans(t *testing.T) {
	_, span := Tracer("catalog").Start(context.Background(), "catalog.search")
	span.End()

	_, noopSpan := NoopTracer().Start(context.Background(), "noop")
	assert.False(t, noopSpan.SpanContext().IsValid())
	noopSpan.End()
}
