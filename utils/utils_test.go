package utils

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, 1.235, FormatFloat(1.23456, 3))
	assert.Equal(t, 0.632456, FormatFloat(0.63245553, 6))
	assert.Equal(t, 2.0, FormatFloat(1.6, 0))
	assert.True(t, math.IsNaN(FormatFloat(math.NaN(), 3)))
	assert.True(t, math.IsInf(FormatFloat(math.Inf(-1), 3), -1))
}

func TestGetLogger(t *testing.T) {
	assert.Equal(t, zap.L(), GetLogger(context.Background()))

	core, logs := observer.New(zap.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))
	GetLogger(ctx).Info("hello", zap.Int("n", 3))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hello", logs.All()[0].Message)
	assert.Equal(t, int64(3), logs.All()[0].ContextMap()["n"])
}

func TestInitLogger(t *testing.T) {
	prev := zap.L()
	defer zap.ReplaceGlobals(prev)

	require.NoError(t, InitLogger(true, "debug"))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, InitLogger(false, "warn"))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))

	assert.Error(t, InitLogger(false, "loud"))
}
