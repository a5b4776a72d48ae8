package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestZapWrapper_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core))

	log.WithFields(map[string]interface{}{"taskType": "rank-restaurants"}).
		WithError(errors.New("boom")).
		Warn("Cache read failed", map[string]interface{}{"key": "rank:1"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Cache read failed", entry.Message)

	ctx := entry.ContextMap()
	assert.Equal(t, "rank-restaurants", ctx["taskType"])
	assert.Equal(t, "rank:1", ctx["key"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestZap(t *testing.T) {
	l := zap.NewExample()
	assert.Same(t, l, Zap(NewZapAdapter(l)))
	assert.NotNil(t, Zap(nil))
}

func TestNewStructured(t *testing.T) {
	log, err := NewStructured("info", "json", "stderr")
	require.NoError(t, err)
	log.Info("started", nil)
}
