package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		logger, err := New(DefaultConfig())
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("development", func(t *testing.T) {
		logger, err := New(DevelopmentConfig())
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(Config{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("empty outputs fall back to stderr", func(t *testing.T) {
		_, err := New(Config{Level: "warn"})
		assert.NoError(t, err)
	})
}

func TestNewDefault(t *testing.T) {
	assert.NotNil(t, NewDefault())
	assert.NotNil(t, NewNop())
}

func TestContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := (&Logger{Logger: zap.New(core)}).ForRun("run_01").ForFixture("Gamma.csv")

	logger.Info("processed")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "run_01", fields["run"])
	assert.Equal(t, "Gamma.csv", fields["fixture"])

	logger.ForRow(3, []string{"-2"}).Debug("no real value")
	require.Equal(t, 2, logs.Len())
	fields = logs.All()[1].ContextMap()
	assert.Equal(t, int64(3), fields[RowKey])
	assert.Equal(t, []interface{}{"-2"}, fields[ArgsKey])
	assert.Equal(t, "Gamma.csv", fields[FixtureKey])
}

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "specval.log")
	logger, err := New(Config{Level: "info", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.ForRun("run_01").Info("Starting run")
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"message":"Starting run"`)
	assert.Contains(t, lines[0], `"run":"run_01"`)
	assert.Contains(t, lines[0], `"timestamp":`)
}
