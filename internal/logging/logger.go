package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AnalyzerLogger is the structured logging interface the analysis pipeline
// logs through end to end, from snapshot loading through report assembly.
type AnalyzerLogger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, err error, fields ...zap.Field)
	Fatal(msg string, err error, fields ...zap.Field)
	With(fields ...zap.Field) AnalyzerLogger
	Sync() error
}

// Logger implements AnalyzerLogger using zap. It always writes to stdout:
// this is an offline CLI run once per invocation, not a long-lived service
// that needs file rotation or a separate stderr stream.
type Logger struct {
	logger *zap.Logger
}

// LoggerConfig controls the zap encoder. Level and Format are the only two
// knobs the config file exposes (no CLI flag sets them), mirroring
// internal/config.LoggerConfig.
type LoggerConfig struct {
	Level  string
	Format string
}

// NewLogger builds a Logger encoding either JSON or human-readable console
// lines to stdout at the given level.
func NewLogger(config LoggerConfig) (AnalyzerLogger, error) {
	level, err := parseLogLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(config.Format) {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console", "":
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("unsupported log format: %s", config.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return &Logger{logger: logger}, nil
}

// NewDefaultLogger returns an info-level console logger, for tests and any
// caller that runs before a Config has been loaded.
func NewDefaultLogger() AnalyzerLogger {
	logger, err := NewLogger(LoggerConfig{Level: "info", Format: "console"})
	if err != nil {
		zapLogger, _ := zap.NewProduction()
		return &Logger{logger: zapLogger}
	}
	return logger
}

// Debug logs a debug message with optional fields.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.logger.Debug(msg, fields...)
}

// Info logs an info message with optional fields.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.logger.Info(msg, fields...)
}

// Warn logs a warning message with optional fields.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.logger.Warn(msg, fields...)
}

// Error logs an error message with err and optional fields.
func (l *Logger) Error(msg string, err error, fields ...zap.Field) {
	allFields := make([]zap.Field, 0, len(fields)+1)
	if err != nil {
		allFields = append(allFields, zap.Error(err))
	}
	allFields = append(allFields, fields...)
	l.logger.Error(msg, allFields...)
}

// Fatal logs a fatal message with err and optional fields, then calls os.Exit(1).
func (l *Logger) Fatal(msg string, err error, fields ...zap.Field) {
	allFields := make([]zap.Field, 0, len(fields)+1)
	if err != nil {
		allFields = append(allFields, zap.Error(err))
	}
	allFields = append(allFields, fields...)
	l.logger.Fatal(msg, allFields...)
}

// With returns a child logger carrying the given fields on every call.
func (l *Logger) With(fields ...zap.Field) AnalyzerLogger {
	return &Logger{logger: l.logger.With(fields...)}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

// parseLogLevel converts a level string to a zapcore.Level.
func parseLogLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level: %s", level)
	}
}

// LoggerFields provides field constructors for the structured contexts this
// analyzer logs about: snapshot ranges, individual metrics, gradient model
// runs, and cross-model classification verdicts.
type LoggerFields struct{}

// Fields is the package-level LoggerFields instance callers use.
var Fields LoggerFields

// String creates a string field.
func (LoggerFields) String(key, value string) zap.Field {
	return zap.String(key, value)
}

// Int creates an int field.
func (LoggerFields) Int(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// Float64 creates a float64 field.
func (LoggerFields) Float64(key string, value float64) zap.Field {
	return zap.Float64(key, value)
}

// Duration creates a duration field.
func (LoggerFields) Duration(key string, value time.Duration) zap.Field {
	return zap.Duration(key, value)
}

// Error creates an error field.
func (LoggerFields) Error(err error) zap.Field {
	return zap.Error(err)
}

// Snapshot creates fields describing a loaded snapshot range.
func (LoggerFields) Snapshot(beginSnapID, endSnapID uint64, count int) []zap.Field {
	return []zap.Field{
		zap.Uint64("begin_snap_id", beginSnapID),
		zap.Uint64("end_snap_id", endSnapID),
		zap.Int("snapshot_count", count),
	}
}

// Metric creates fields identifying a single analyzed metric series.
func (LoggerFields) Metric(name string, sampleCount int) []zap.Field {
	return []zap.Field{
		zap.String("metric", name),
		zap.Int("sample_count", sampleCount),
	}
}

// Model creates fields identifying a gradient-attribution model run.
func (LoggerFields) Model(name string, iterations int) []zap.Field {
	return []zap.Field{
		zap.String("model", name),
		zap.Int("iterations", iterations),
	}
}

// Classification creates fields for a cross-model classification result.
func (LoggerFields) Classification(event, label string, priority int) []zap.Field {
	return []zap.Field{
		zap.String("event", event),
		zap.String("classification", label),
		zap.Int("priority", priority),
	}
}
