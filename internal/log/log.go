package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface used across the engine.
type Logger interface {
	Debugf(template string, args ...any)
	Infof(template string, args ...any)
	Warnf(template string, args ...any)
	Errorf(template string, args ...any)
	Sync() error
}

// zapLogger implements Logger around a zap.SugaredLogger.
type zapLogger struct {
	*zap.SugaredLogger
}

func loggerFromZap(logger *zap.Logger) *zapLogger {
	return &zapLogger{logger.Sugar()}
}

// NewCLILogger returns a console logger writing to w, usually stderr.
// Debug messages are emitted only when debug is set; otherwise only
// warnings and errors surface, keeping piped output clean.
func NewCLILogger(w io.Writer, debug bool) Logger {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: "  ",
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return loggerFromZap(zap.New(core))
}

// NewNopLogger returns a logger that discards everything, for tests.
func NewNopLogger() Logger {
	return loggerFromZap(zap.NewNop())
}
