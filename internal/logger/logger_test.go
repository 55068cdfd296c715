package logger

import (
	"testing"

	"wiki-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_BeforeInitializeIsUsable(t *testing.T) {
	require.NotNil(t, Get())
	Get().Info("no-op logger accepts entries")
}

func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize(config.LoggerConfig{Env: "production", Level: "debug"}))
	assert.True(t, Get().Core().Enabled(-1), "debug level enabled")

	require.NoError(t, Initialize(config.LoggerConfig{Env: "development"}))
	assert.False(t, Get().Core().Enabled(-1), "info is the default level")

	assert.Error(t, Initialize(config.LoggerConfig{Level: "loud"}))
}
