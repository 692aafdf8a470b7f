package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/stock-migrate/internal/config"
	"github.com/Spok95/stock-migrate/internal/infra/logger"
)

func writeWorkbook(t *testing.T, cells map[string]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "adjustment.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T, path string) config.Config {
	t.Helper()
	cfg, err := config.Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Header.Path = path
	return cfg
}

func TestLocate_Found(t *testing.T) {
	path := writeWorkbook(t, map[string]string{
		"A1": "INVENTORY ADJUSTMENT",
		"A4": "No", "B4": "Barcode", "C4": "Produk",
		"A5": "1", "B5": "111", "C5": "TEHEL",
		"A6": "2", "B6": "222", "C6": "SEMEN",
	})
	var out, logs bytes.Buffer
	if err := locate(&out, testConfig(t, path), logger.NewWithWriter(&logs, "prod", "xlsxheader"), true); err != nil {
		t.Fatalf("locate: %v", err)
	}
	want := "Found headers at row 3: No | Barcode | Produk\nLines under header: 2\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestLocate_NotFoundIsNotAnError(t *testing.T) {
	path := writeWorkbook(t, map[string]string{"A1": "Barcode", "B2": "Produk"})
	var out, logs bytes.Buffer
	if err := locate(&out, testConfig(t, path), logger.NewWithWriter(&logs, "prod", "xlsxheader"), true); err != nil {
		t.Fatalf("not found must not be an error, got %v", err)
	}
	want := "Could not find header row containing 'Barcode' and 'Produk'\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestLocate_OpenError(t *testing.T) {
	var out, logs bytes.Buffer
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing.xlsx"))
	if err := locate(&out, cfg, logger.NewWithWriter(&logs, "prod", "xlsxheader"), false); err == nil {
		t.Fatal("expected open error")
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be reported on open error, got %q", out.String())
	}
}
