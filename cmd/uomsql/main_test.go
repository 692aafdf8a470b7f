package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Spok95/stock-migrate/internal/config"
	"github.com/Spok95/stock-migrate/internal/infra/logger"
)

func testConfig(t *testing.T, input string) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Uoms.Input = filepath.Join(dir, "productUoms.json")
	cfg.Uoms.Output = filepath.Join(dir, "insert_uoms.sql")
	cfg.Verify = true
	if err := os.WriteFile(cfg.Uoms.Input, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func exportOnce(t *testing.T, cfg config.Config) string {
	t.Helper()
	var logs bytes.Buffer
	if err := runExport(context.Background(), cfg, logger.NewWithWriter(&logs, "dev", "uomsql"), true); err != nil {
		t.Fatalf("runExport: %v\n%s", err, logs.String())
	}
	out, err := os.ReadFile(cfg.Uoms.Output)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestRunExport(t *testing.T) {
	cfg := testConfig(t, `[
		{"id": 1, "name": "Units", "category_id": [1, "Unit"], "uom_type": "reference", "factor_inv": 1, "factor": 1},
		{"id": 61, "name": "Dus", "category_id": [1, "Unit"], "uom_type": "bigger", "factor_inv": 4, "factor": 0.25}
	]`)

	first := exportOnce(t, cfg)
	want := "INSERT INTO uoms (id, name, category_id, uom_type, factor_inv, factor) VALUES\n" +
		"(1, 'Units', 1, 'reference', 1, 1),\n" +
		"(61, 'Dus', 1, 'bigger', 4, 0.25);\n"
	if first != want {
		t.Errorf("got:\n%s\nwant:\n%s", first, want)
	}

	if second := exportOnce(t, cfg); second != first {
		t.Error("second run is not byte-identical")
	}
}

func TestRunExport_Empty(t *testing.T) {
	cfg := testConfig(t, `[]`)
	if got := exportOnce(t, cfg); got != "-- uoms: no rows to insert\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestRunExport_MalformedWritesNothing(t *testing.T) {
	cfg := testConfig(t, `[{"id": 1, "name": "Units", "category_id": [], "uom_type": "reference", "factor_inv": 1, "factor": 1}]`)

	var logs bytes.Buffer
	err := runExport(context.Background(), cfg, logger.NewWithWriter(&logs, "prod", "uomsql"), false)
	if err == nil || !strings.Contains(err.Error(), "category_id") {
		t.Fatalf("expected category_id error, got %v", err)
	}
	if _, err := os.Stat(cfg.Uoms.Output); !os.IsNotExist(err) {
		t.Errorf("output must not exist after a failed run, stat err = %v", err)
	}
}

func TestRunExport_DuplicateIDsFailVerify(t *testing.T) {
	cfg := testConfig(t, `[
		{"id": 1, "name": "Units", "category_id": [1], "uom_type": "reference", "factor_inv": 1, "factor": 1},
		{"id": 1, "name": "Units again", "category_id": [1], "uom_type": "reference", "factor_inv": 1, "factor": 1}
	]`)
	var logs bytes.Buffer
	err := runExport(context.Background(), cfg, logger.NewWithWriter(&logs, "prod", "uomsql"), false)
	if err == nil || !strings.Contains(err.Error(), "verify") {
		t.Fatalf("expected verify error, got %v", err)
	}
}

func TestRunExport_MissingInput(t *testing.T) {
	cfg := testConfig(t, `[]`)
	cfg.Uoms.Input = filepath.Join(t.TempDir(), "nope.json")
	var logs bytes.Buffer
	if err := runExport(context.Background(), cfg, logger.NewWithWriter(&logs, "prod", "uomsql"), false); err == nil {
		t.Fatal("expected error for missing input")
	}
}
