// Package observability builds the process logger.
package observability

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/san-kum/ballsim/internal/config"
)

// Options selects where log lines go.
type Options struct {
	// Console receives human-readable lines. Nil disables the console core.
	Console io.Writer
}

// NewLogger builds a zap logger from cfg. When cfg.File is set an extra
// JSON core writes through lumberjack rotation. Terminal UIs pass a nil
// Console so nothing is printed over the screen.
func NewLogger(cfg config.LogConfig, opts Options) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	cores := make([]zapcore.Core, 0, 2)
	if opts.Console != nil {
		cores = append(cores, zapcore.NewCore(encoder(cfg.Format), zapcore.Lock(zapcore.AddSync(opts.Console)), level))
	}
	if cfg.File != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		})
		cores = append(cores, zapcore.NewCore(encoder("json"), fileWriter, level))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named("ballsim")
}

// NewConsoleLogger logs to stderr, leaving stdout for command output.
func NewConsoleLogger(cfg config.LogConfig) *zap.Logger {
	return NewLogger(cfg, Options{Console: os.Stderr})
}

func encoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}
