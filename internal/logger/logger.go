package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap logger configured based on environment variables.
// If APP_ENV or LOG_ENV is set to "production", a production logger is returned; otherwise a development logger.
// A non-empty level overrides the default level of either flavour.
func New(level string) (*zap.Logger, error) {
	env := os.Getenv("LOG_ENV")
	if env == "" {
		env = os.Getenv("APP_ENV")
	}

	if env == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(level, zapcore.InfoLevel))
		return cfg.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level, zapcore.DebugLevel))
	return cfg.Build(zap.AddCaller())
}

func parseLevel(level string, fallback zapcore.Level) zapcore.Level {
	if level == "" {
		return fallback
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return fallback
	}
	return l
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
