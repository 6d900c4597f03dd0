package indicator

import (
	"context"
	"log/slog"
)

// Log is a headless indicator that only logs color changes.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a logging indicator.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Name() string { return "log" }

func (l *Log) Configure(_ context.Context, initial Color) error {
	l.logger.Info("indicator configured", "color", initial.Hex())
	return nil
}

func (l *Log) SetColor(_ context.Context, c Color) error {
	l.logger.Info("indicator color", "color", c.Hex())
	return nil
}

func (l *Log) Close() error { return nil }
