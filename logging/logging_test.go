package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New("debug")
	require.NoError(t, err)
	assert.True(t, logger.Desugar().Core().Enabled(zapcore.DebugLevel))

	logger, err = New("warn")
	require.NoError(t, err)
	assert.False(t, logger.Desugar().Core().Enabled(zapcore.InfoLevel))

	_, err = New("loud")
	assert.Error(t, err)
}

func TestNewConfigWritesToStderr(t *testing.T) {
	cfg := NewConfig(zapcore.InfoLevel)
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
	assert.Equal(t, "console", cfg.Encoding)
}
