package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// New пишет JSON в stderr, stdout остаётся под отчёт утилиты.
// Каждая запись несёт имя утилиты и run_id запуска.
func New(env, tool string) *slog.Logger {
	return NewWithWriter(os.Stderr, env, tool)
}

func NewWithWriter(w io.Writer, env, tool string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("tool", tool, "run_id", uuid.NewString())
}
