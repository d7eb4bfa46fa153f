package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the backend and verbosity.
//
// Format is one of "text" (default), "json" or "zap"; Level is one of
// "debug", "info" (default), "warn", "error".
type Options struct {
	Format string
	Level  string
	Out    io.Writer
}

func slogLevel(l string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func zapLevel(l string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a Logger for the given options.
func New(opts Options) (Logger, error) {
	if opts.Out == nil {
		opts.Out = os.Stderr
	}
	switch strings.ToLower(opts.Format) {
	case "", "text":
		return NewSlogLogger(slog.New(slog.NewTextHandler(opts.Out, &slog.HandlerOptions{Level: slogLevel(opts.Level)}))), nil
	case "json":
		return NewSlogLogger(slog.New(slog.NewJSONHandler(opts.Out, &slog.HandlerOptions{Level: slogLevel(opts.Level)}))), nil
	case "zap":
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(opts.Out), zapLevel(opts.Level))
		return NewZapLogger(zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
}
