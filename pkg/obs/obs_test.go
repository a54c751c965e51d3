package obs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZeroValueClientDiscards(t *testing.T) {
	c := &Client{}
	assert.NotPanics(t, func() {
		c.LogInfo(context.Background(), "replay.done average=%f", 1.5)
		c.LogAlert(context.Background(), "boom")
	})
	assert.NoError(t, c.Sync())
}

func TestLogCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := NewWithLogger(zap.New(core))

	ctx := context.WithValue(context.Background(), RequestIDContextKey, "req-1")
	c.LogInfo(ctx, "session.apply id=%s events=%d", "abc", 3)
	c.LogAlert(context.Background(), "invariant broken")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "session.apply id=abc events=3", entries[0].Message)
	assert.Equal(t, "req-1", entries[0].ContextMap()["req_id"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, "alert", entries[1].ContextMap()["tag"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zap.InfoLevel, parseLevel("bogus"))
}
