package run

import (
	"context"
	"log/slog"

	"github.com/Spok95/stock-migrate/internal/config"
	"github.com/Spok95/stock-migrate/internal/infra/metrics"
	"github.com/Spok95/stock-migrate/internal/infra/notify"
)

// Finish отправляет отчёт и сбрасывает метрики. Файлы к этому моменту уже записаны,
// поэтому ошибки здесь только логируются.
func Finish(ctx context.Context, cfg config.Config, log *slog.Logger, m *metrics.Run, r notify.Report) {
	n, err := notify.New(cfg.Telegram.Token, cfg.Telegram.AdminChatID)
	if err != nil {
		log.Warn("notifier unavailable", "err", err)
	} else if err := n.Notify(ctx, r); err != nil {
		log.Warn("notify failed", "err", err)
	}

	if cfg.Metrics.Enabled {
		if err := m.Flush(cfg.Metrics.Textfile); err != nil {
			log.Warn("metrics flush failed", "path", cfg.Metrics.Textfile, "err", err)
		}
	}
}
