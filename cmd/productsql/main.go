package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/Spok95/stock-migrate/internal/config"
	"github.com/Spok95/stock-migrate/internal/domain/products"
	"github.com/Spok95/stock-migrate/internal/infra/db"
	"github.com/Spok95/stock-migrate/internal/infra/files"
	"github.com/Spok95/stock-migrate/internal/infra/logger"
	"github.com/Spok95/stock-migrate/internal/infra/metrics"
	"github.com/Spok95/stock-migrate/internal/infra/notify"
	"github.com/Spok95/stock-migrate/internal/run"
	"github.com/Spok95/stock-migrate/internal/spreadsheet"
	"github.com/Spok95/stock-migrate/internal/sqlcheck"
)

func main() {
	fs := pflag.NewFlagSet("productsql", pflag.ExitOnError)
	cfgPath := fs.String("config", "config/example.yaml", "path to YAML config")
	fs.String("products.input", "", "JSON array of scanned products")
	fs.String("products.filtered_output", "", "JSON file for the filtered products")
	fs.String("products.sql_output", "", "SQL file to write")
	fs.String("products.xlsx_output", "", "optional Excel copy of the filtered products")
	fs.Int64("products.user_id", 0, "keep only products of this user")
	fs.Int64("products.session_id", 0, "session id written into every row")
	fs.Bool("verify", true, "dry-run the generated SQL on in-memory SQLite")
	fs.Bool("postgres.apply", false, "also insert the rows into postgres.dsn")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*cfgPath, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.App.Env, "productsql")
	if err := cfg.ValidateProducts(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runExport(ctx, cfg, log); err != nil {
		log.Error("productsql failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func runExport(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	p := cfg.Products
	m := metrics.NewRun("productsql")

	f, err := os.Open(p.Input)
	if err != nil {
		return err
	}
	all, err := products.Decode(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", p.Input, err)
	}
	m.RecordsRead.Add(float64(len(all)))

	// 1) фильтр по пользователю
	filtered := products.FilterByUser(all, p.UserID)
	m.RecordsKept.Add(float64(len(filtered)))
	log.Info("products filtered", "input", p.Input, "total", len(all), "user_id", p.UserID, "kept", len(filtered))
	fmt.Printf("Total products found for user %d: %d\n", p.UserID, len(filtered))

	// 2) все выходы собираются в памяти, на диск ничего не пишется,
	// пока каждый из них не собран и не проверен
	data, err := products.MarshalRecords(filtered)
	if err != nil {
		return err
	}

	ins, err := products.BuildInsert(p.Table, p.SessionID, filtered)
	if err != nil {
		return err
	}
	script := ins.String()

	if cfg.Verify && ins.Len() > 0 {
		n, err := sqlcheck.Check(ctx, products.SQLiteSchema(p.Table), script, p.Table)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		if n != ins.Len() {
			return fmt.Errorf("verify: expected %d rows, got %d", ins.Len(), n)
		}
		log.Debug("sql verified", "rows", n)
	}

	var sheet bytes.Buffer
	if p.XLSXOutput != "" {
		if err := spreadsheet.Write(&sheet, "Products", products.SheetHeader, products.SheetRows(filtered)); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}

	// 3) запись
	if err := files.WriteAtomic(p.FilteredOutput, data); err != nil {
		return err
	}
	log.Info("filtered products written", "output", p.FilteredOutput)

	if err := files.WriteAtomic(p.SQLOutput, []byte(script)); err != nil {
		return err
	}
	m.SQLRows.Add(float64(ins.Len()))
	log.Info("sql written", "output", p.SQLOutput, "rows", ins.Len(), "session_id", p.SessionID)

	if p.XLSXOutput != "" {
		if err := files.WriteAtomic(p.XLSXOutput, sheet.Bytes()); err != nil {
			return err
		}
		log.Info("xlsx written", "output", p.XLSXOutput)
	}

	if err := applyPostgres(ctx, cfg, log, filtered); err != nil {
		return err
	}

	run.Finish(ctx, cfg, log, m, notify.Report{
		Tool: "productsql",
		Lines: []string{
			fmt.Sprintf("всего позиций: %d", len(all)),
			fmt.Sprintf("пользователь %d: %d", p.UserID, len(filtered)),
			fmt.Sprintf("session_id: %d", p.SessionID),
		},
		Files: []notify.Attachment{
			{Name: p.SQLOutput, Data: []byte(script)},
			{Name: p.FilteredOutput, Data: data},
		},
	})
	return nil
}

func applyPostgres(ctx context.Context, cfg config.Config, log *slog.Logger, filtered []products.Record) error {
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

	repo := products.NewRepo(pool, cfg.Products.Table)
	n, err := repo.InsertMany(ctx, cfg.Products.SessionID, filtered)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	inSession, err := repo.CountBySession(ctx, cfg.Products.SessionID)
	if err != nil {
		return err
	}
	log.Info("products applied", "rows", n, "session_id", cfg.Products.SessionID, "session_total", inSession)
	return nil
}
