package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Products.UserID != 80 || c.Products.SessionID != 73 {
		t.Errorf("unexpected defaults: user=%d session=%d", c.Products.UserID, c.Products.SessionID)
	}
	if c.Uoms.Input != "productUoms.json" || c.Uoms.Output != "insert_uoms.sql" {
		t.Errorf("unexpected uoms defaults: %+v", c.Uoms)
	}
	if len(c.Header.Markers) != 2 || c.Header.Markers[0] != "Barcode" || c.Header.Markers[1] != "Produk" {
		t.Errorf("unexpected markers: %v", c.Header.Markers)
	}
	if !c.Verify {
		t.Error("verify should default to true")
	}
	if err := c.ValidateProducts(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := writeConfig(t, `
app:
  env: dev
products:
  input: in.json
  user_id: 12
  session_id: 5
header:
  markers: ["Kode", "Nama"]
`)
	t.Setenv("APP_PRODUCTS_SESSION_ID", "9")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("products.input", "", "")
	if err := fs.Parse([]string{"--products.input=override.json"}); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path, fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.App.Env != "dev" {
		t.Errorf("env = %q", c.App.Env)
	}
	if c.Products.UserID != 12 {
		t.Errorf("user_id from file = %d, want 12", c.Products.UserID)
	}
	if c.Products.SessionID != 9 {
		t.Errorf("session_id from env = %d, want 9", c.Products.SessionID)
	}
	if c.Products.Input != "override.json" {
		t.Errorf("input from flag = %q", c.Products.Input)
	}
	if len(c.Header.Markers) != 2 || c.Header.Markers[0] != "Kode" {
		t.Errorf("markers = %v", c.Header.Markers)
	}
	// ключа нет в файле, остаётся значение по умолчанию
	if c.Products.FilteredOutput != "cindy_products.json" {
		t.Errorf("filtered_output = %q", c.Products.FilteredOutput)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	c, err := Load("", nil)
	if err != nil {
		t.Fatal(err)
	}

	bad := c
	bad.Products.UserID = 0
	if err := bad.ValidateProducts(); err == nil {
		t.Error("expected error for zero user_id")
	}

	bad = c
	bad.Postgres.Apply = true
	if err := bad.ValidateUoms(); err == nil {
		t.Error("expected error for apply without dsn")
	}

	bad = c
	bad.Postgres.DSN = "postgres://localhost/stock"
	bad.Postgres.Migrate = true
	bad.Products.Table = "products_import"
	if err := bad.ValidateProducts(); err == nil {
		t.Error("expected error for custom products.table with migrate")
	}
	bad.Uoms.Table = "uom_import"
	if err := bad.ValidateUoms(); err == nil {
		t.Error("expected error for custom uoms.table with migrate")
	}

	ok := c
	ok.Postgres.DSN = "postgres://localhost/stock"
	ok.Postgres.Migrate = true
	if err := ok.ValidateProducts(); err != nil {
		t.Errorf("default tables with migrate should validate: %v", err)
	}
	ok.Postgres.Migrate = false
	ok.Postgres.Apply = true
	ok.Products.Table = "products_import"
	if err := ok.ValidateProducts(); err != nil {
		t.Errorf("custom table without migrate should validate: %v", err)
	}

	bad = c
	bad.Header.Markers = []string{"Barcode", " "}
	if err := bad.ValidateHeader(); err == nil {
		t.Error("expected error for blank marker")
	}
}
