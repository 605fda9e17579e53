package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_RequestIDField(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	l := &logger{zap: zap.New(core)}

	ctx := ContextWithRequestID(context.Background(), "req-42")
	l.Info(ctx, "ipn handled", String("outcome", "applied"))
	l.Warn(context.Background(), "no id")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "applied", entries[0].ContextMap()["outcome"])
	assert.NotContains(t, entries[1].ContextMap(), "request_id")
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Init("chatty", true))
}

func TestRequestIDFromContext_Nil(t *testing.T) {
	t.Parallel()

	//nolint:staticcheck
	assert.Empty(t, RequestIDFromContext(nil))
}
