package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer SetCore(core)()

	SetLogLevel("info")

	msg := "[exp1 SolverSB Success] wrote exp1_SolverSB_Success.pdf groups=10 share=(100.0% of 80)"
	Infof(msg)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "(100.0% of 80)")
	assert.NotContains(t, entries[0].Message, "%!")
}

func TestSetLogLevel_GatesOutput(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer SetCore(core)()
	defer SetLogLevel("info")

	SetLogLevel("warn")
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown 2", logs.All()[0].Message)
	assert.Equal(t, LevelWarn, GetLogLevel())

	SetLogLevel("bogus")
	assert.Equal(t, LevelWarn, GetLogLevel(), "unknown names keep the current level")

	SetLogLevel(" DEBUG ")
	Debugf("now visible")
	assert.Equal(t, 2, logs.Len())
}
