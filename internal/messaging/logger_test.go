package messaging_test

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/serroba/shorturl/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := messaging.NewZapLogger(zap.New(core))

	logger.Info("subscribed", watermill.LogFields{"topic": "shorturl.created"})
	logger.Trace("polling", nil)
	logger.With(watermill.LogFields{"consumer_group": "audit"}).
		Error("read failed", errors.New("boom"), watermill.LogFields{"stream": "shorturl.created"})

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "subscribed", entries[0].Message)
	assert.Equal(t, "shorturl.created", entries[0].ContextMap()["topic"])

	assert.Equal(t, zap.DebugLevel, entries[1].Level)

	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	fields := entries[2].ContextMap()
	assert.Equal(t, "audit", fields["consumer_group"])
	assert.Equal(t, "shorturl.created", fields["stream"])
	assert.Equal(t, "boom", fields["error"])
}
