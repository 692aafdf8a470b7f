package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWithWriter_Attrs(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "prod", "uomsql")
	log.Debug("hidden")
	log.Info("written", "rows", 3)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected only the info line in prod, got %d lines", len(lines))
	}
	var rec map[string]any
	if err := json.Unmarshal(lines[0], &rec); err != nil {
		t.Fatal(err)
	}
	if rec["tool"] != "uomsql" || rec["msg"] != "written" || rec["rows"] != float64(3) {
		t.Errorf("unexpected record: %v", rec)
	}
	if id, _ := rec["run_id"].(string); len(id) != 36 {
		t.Errorf("run_id = %v", rec["run_id"])
	}
}

func TestNewWithWriter_DevIsDebug(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "dev", "xlsxheader").Debug("visible")
	if buf.Len() == 0 {
		t.Fatal("debug must be enabled in dev")
	}
}
