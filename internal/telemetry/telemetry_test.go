package telemetry_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/dcc-bot-discord/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNoopTracer_SpansAreNotRecorded(t *testing.T) {
	_, span := telemetry.NoopTracer().Start(context.Background(), "attack.resolve")
	defer span.End()

	assert.False(t, span.IsRecording())
}
