package run

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Spok95/stock-migrate/internal/config"
	"github.com/Spok95/stock-migrate/internal/infra/logger"
	"github.com/Spok95/stock-migrate/internal/infra/metrics"
	"github.com/Spok95/stock-migrate/internal/infra/notify"
)

func TestFinish_WritesMetrics(t *testing.T) {
	var cfg config.Config
	cfg.Metrics.Enabled = true
	cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "run.prom")

	var logs bytes.Buffer
	m := metrics.NewRun("uomsql")
	m.SQLRows.Add(2)
	Finish(context.Background(), cfg, logger.NewWithWriter(&logs, "prod", "uomsql"), m, notify.Report{Tool: "uomsql"})

	body, err := os.ReadFile(cfg.Metrics.Textfile)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(body), `stock_migrate_sql_rows_total{tool="uomsql"} 2`) {
		t.Errorf("unexpected metrics:\n%s", body)
	}
	if strings.Contains(logs.String(), `"level":"WARN"`) {
		t.Errorf("unexpected warnings: %s", logs.String())
	}
}

func TestFinish_MetricsFailureOnlyWarns(t *testing.T) {
	var cfg config.Config
	cfg.Metrics.Enabled = true
	cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "missing", "dir", "run.prom")

	var logs bytes.Buffer
	Finish(context.Background(), cfg, logger.NewWithWriter(&logs, "prod", "uomsql"), metrics.NewRun("uomsql"), notify.Report{})
	if !strings.Contains(logs.String(), "metrics flush failed") {
		t.Errorf("expected warning, got %s", logs.String())
	}
}
