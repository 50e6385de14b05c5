package main

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jonny/zabbix-bot/internal/config"
)

// buildLogger constructs a slog.Logger based on config. The returned closer
// releases the log file when output is a path.
func buildLogger(cfg config.LoggingConfig) (*slog.Logger, io.Closer) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	w, closer := logWriter(cfg)
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts)), closer
	}
	return slog.New(slog.NewJSONHandler(w, opts)), closer
}

func logWriter(cfg config.LoggingConfig) (io.Writer, io.Closer) {
	switch cfg.Output {
	case "", "stdout":
		return os.Stdout, nopCloser{}
	case "stderr":
		return os.Stderr, nopCloser{}
	default:
		lj := &lumberjack.Logger{
			Filename:   cfg.Output,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		return lj, lj
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
