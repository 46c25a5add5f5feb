package logging

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a *zap.Logger to Logger.
type ZapLogger struct {
	L *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// NewZap builds a zap-backed Logger writing to stderr.
// level: debug, info, warn, error. format: json or console.
func NewZap(level, format string) (*ZapLogger, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case "json", "":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unsupported log format %q; expected json or console", format)
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &ZapLogger{L: l}, nil
}

// Debug logs at debug level.
func (z *ZapLogger) Debug(msg string, ctx Fields) { z.L.Debug(msg, toZapFields(ctx)...) }

// Info logs at info level.
func (z *ZapLogger) Info(msg string, ctx Fields) { z.L.Info(msg, toZapFields(ctx)...) }

// Warn logs at warn level.
func (z *ZapLogger) Warn(msg string, ctx Fields) { z.L.Warn(msg, toZapFields(ctx)...) }

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error { return z.L.Sync() }

// toZapFields emits fields in key order so output is stable.
func toZapFields(ctx Fields) []zap.Field {
	if len(ctx) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, ctx[k]))
	}
	return out
}
