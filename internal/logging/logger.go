package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/ogulcanaydogan/tomatina/internal/config"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// New creates a structured logger from config. With journal logging
// enabled, records also go to the systemd journal.
func New(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var local slog.Handler
	if cfg.Format == "json" {
		local = slog.NewJSONHandler(w, opts)
	} else {
		local = slog.NewTextHandler(w, opts)
	}

	if !cfg.Journal {
		return slog.New(local)
	}

	journal, err := slogjournal.NewHandler(&slogjournal.Options{
		Level: level,
		ReplaceGroup: func(key string) string {
			return JournalKey(key)
		},
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			a.Key = JournalKey(a.Key)
			return a
		},
	})
	if err != nil {
		logger := slog.New(local)
		logger.Warn("systemd journal unavailable, logging locally only", "error", err)
		return logger
	}

	return slog.New(slogmulti.Fanout(local, journal))
}

// ParseLevel maps a config level name to a slog level. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// JournalKey converts an attribute key to a valid journal field name.
func JournalKey(key string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(key))
}
