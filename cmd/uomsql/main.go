package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/Spok95/stock-migrate/internal/config"
	"github.com/Spok95/stock-migrate/internal/domain/uoms"
	"github.com/Spok95/stock-migrate/internal/infra/db"
	"github.com/Spok95/stock-migrate/internal/infra/files"
	"github.com/Spok95/stock-migrate/internal/infra/logger"
	"github.com/Spok95/stock-migrate/internal/infra/metrics"
	"github.com/Spok95/stock-migrate/internal/infra/notify"
	"github.com/Spok95/stock-migrate/internal/run"
	"github.com/Spok95/stock-migrate/internal/sqlcheck"
)

func main() {
	fs := pflag.NewFlagSet("uomsql", pflag.ExitOnError)
	cfgPath := fs.String("config", "config/example.yaml", "path to YAML config")
	fs.String("uoms.input", "", "JSON array of uom records")
	fs.String("uoms.output", "", "SQL file to write")
	fs.String("uoms.table", "", "target table")
	fs.Bool("verify", true, "dry-run the generated SQL on in-memory SQLite")
	fs.Bool("postgres.apply", false, "also upsert the records into postgres.dsn")
	summary := fs.Bool("summary", false, "log reference unit per uom category")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*cfgPath, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.App.Env, "uomsql")
	if err := cfg.ValidateUoms(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runExport(ctx, cfg, log, *summary); err != nil {
		log.Error("uomsql failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func runExport(ctx context.Context, cfg config.Config, log *slog.Logger, summary bool) error {
	m := metrics.NewRun("uomsql")

	f, err := os.Open(cfg.Uoms.Input)
	if err != nil {
		return err
	}
	list, err := uoms.Decode(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Uoms.Input, err)
	}
	m.RecordsRead.Add(float64(len(list)))
	log.Info("uoms loaded", "input", cfg.Uoms.Input, "count", len(list))

	if summary {
		for _, c := range uoms.GroupByCategory(list) {
			ref := ""
			if c.Reference != nil {
				ref = c.Reference.Name
			}
			log.Info("uom category", "category_id", c.ID, "uoms", len(c.Uoms), "reference", ref)
		}
	}

	ins, err := uoms.BuildInsert(cfg.Uoms.Table, list)
	if err != nil {
		return err
	}
	script := ins.String()

	if cfg.Verify && ins.Len() > 0 {
		n, err := sqlcheck.Check(ctx, uoms.SQLiteSchema(cfg.Uoms.Table), script, cfg.Uoms.Table)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		if n != ins.Len() {
			return fmt.Errorf("verify: expected %d rows, got %d", ins.Len(), n)
		}
		log.Debug("sql verified", "rows", n)
	}

	if err := files.WriteAtomic(cfg.Uoms.Output, []byte(script)); err != nil {
		return err
	}
	m.SQLRows.Add(float64(ins.Len()))
	log.Info("sql written", "output", cfg.Uoms.Output, "rows", ins.Len())
	fmt.Printf("SQL written to %s (%d rows)\n", cfg.Uoms.Output, ins.Len())

	if err := applyPostgres(ctx, cfg, log, list); err != nil {
		return err
	}

	run.Finish(ctx, cfg, log, m, notify.Report{
		Tool:  "uomsql",
		Lines: []string{fmt.Sprintf("единиц измерения: %d", len(list))},
		Files: []notify.Attachment{{Name: cfg.Uoms.Output, Data: []byte(script)}},
	})
	return nil
}

func applyPostgres(ctx context.Context, cfg config.Config, log *slog.Logger, list []uoms.Uom) error {
	if cfg.Postgres.Migrate {
		if err := db.Migrate(ctx, cfg.Postgres.DSN); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		log.Info("migrations applied")
	}
	if !cfg.Postgres.Apply {
		return nil
	}

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	repo := uoms.NewRepo(pool, cfg.Uoms.Table)
	n, err := repo.Upsert(ctx, list)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	log.Info("uoms applied", "rows", n, "table_total", total)
	return nil
}
