package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Spok95/stock-migrate/internal/config"
	"github.com/Spok95/stock-migrate/internal/infra/logger"
	"github.com/Spok95/stock-migrate/internal/spreadsheet"
)

func main() {
	fs := pflag.NewFlagSet("xlsxheader", pflag.ExitOnError)
	cfgPath := fs.String("config", "config/example.yaml", "path to YAML config")
	fs.String("header.path", "", "spreadsheet to scan")
	fs.String("header.sheet", "", "sheet name (default: active sheet)")
	fs.StringSlice("header.markers", nil, "labels the header row must contain")
	rows := fs.Bool("rows", false, "also count the lines under the header")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*cfgPath, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.App.Env, "xlsxheader")
	if err := cfg.ValidateHeader(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	if err := locate(os.Stdout, cfg, log, *rows); err != nil {
		fmt.Printf("Error: %v\n", err)
		log.Error("xlsxheader failed", "path", cfg.Header.Path, "err", err)
		os.Exit(1)
	}
}

// locate печатает найденную строку заголовка. Отсутствие заголовка это обычный
// исход: сообщение и nil.
func locate(out io.Writer, cfg config.Config, log *slog.Logger, countRows bool) error {
	wb, err := spreadsheet.Open(cfg.Header.Path)
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	markers := cfg.Header.Markers
	m, err := wb.FindHeader(cfg.Header.Sheet, markers...)
	if errors.Is(err, spreadsheet.ErrHeaderNotFound) {
		fmt.Fprintf(out, "Could not find header row containing %s\n", quoteMarkers(markers))
		log.Info("header not found", "path", cfg.Header.Path, "markers", markers)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Found headers at row %d: %s\n", m.Index, strings.Join(m.Values, " | "))
	log.Info("header found", "path", cfg.Header.Path, "index", m.Index, "excel_row", m.Row(), "values", m.Values)

	if countRows {
		recs, err := wb.ReadTable(cfg.Header.Sheet, m)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Lines under header: %d\n", len(recs))
		log.Info("table read", "lines", len(recs))
	}
	return nil
}

func quoteMarkers(markers []string) string {
	q := make([]string, len(markers))
	for i, m := range markers {
		q[i] = "'" + m + "'"
	}
	return strings.Join(q, " and ")
}
