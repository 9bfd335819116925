package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Context keys attached by the For* helpers.
const (
	RunKey     = "run"
	FixtureKey = "fixture"
	RowKey     = "row"
	ArgsKey    = "args"
)

// Logger wraps zap.Logger with the run, fixture and row scopes of a
// regeneration run.
type Logger struct {
	*zap.Logger
}

// Config defines logger configuration.
type Config struct {
	Level       string   // "debug", "info", "warn", "error"
	Development bool     // console encoding with colour levels and callers
	OutputPaths []string // stderr when empty
}

// DefaultConfig returns production logger configuration.
func DefaultConfig() Config {
	return Config{Level: "info", OutputPaths: []string{"stderr"}}
}

// DevelopmentConfig returns development logger configuration.
func DevelopmentConfig() Config {
	return Config{Level: "debug", Development: true, OutputPaths: []string{"stderr"}}
}

// New creates a logger. Production output is JSON, one object per line.
// Sampling is disabled: a run logs one line per NaN row and none may be
// dropped.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc.DisableCaller = true
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.MessageKey = "message"
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	zc.DisableStacktrace = !cfg.Development
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if len(cfg.OutputPaths) > 0 {
		zc.OutputPaths = cfg.OutputPaths
	}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: logger}, nil
}

// NewDefault creates a logger with default configuration.
func NewDefault() *Logger {
	logger, err := New(DefaultConfig())
	if err != nil {
		return NewNop()
	}
	return logger
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// ForRun tags every entry with the run identifier.
func (l *Logger) ForRun(runID string) *Logger {
	return &Logger{Logger: l.With(zap.String(RunKey, runID))}
}

// ForFixture tags every entry with the fixture identifier.
func (l *Logger) ForFixture(name string) *Logger {
	return &Logger{Logger: l.With(zap.String(FixtureKey, name))}
}

// ForRow tags every entry with a 1-based row number and its argument cells.
func (l *Logger) ForRow(row int, args []string) *Logger {
	return &Logger{Logger: l.With(zap.Int(RowKey, row), zap.Strings(ArgsKey, args))}
}
