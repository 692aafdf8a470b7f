package uoms

import (
	"context"
	"strings"
	"testing"
)

func TestRepo_UpsertEmpty(t *testing.T) {
	// пустой список не трогает пул, поэтому nil-пул допустим
	r := NewRepo(nil, "uoms")
	n, err := r.Upsert(context.Background(), nil)
	if err != nil || n != 0 {
		t.Fatalf("Upsert(nil) = %d, %v", n, err)
	}
	if n, err := r.Upsert(context.Background(), []Uom{}); err != nil || n != 0 {
		t.Fatalf("Upsert(empty) = %d, %v", n, err)
	}
}

func TestRepo_SQL(t *testing.T) {
	q := upsertSQL("uoms")
	for _, want := range []string{`INSERT INTO "uoms" (id, name, category_id, uom_type, factor_inv, factor)`, "ON CONFLICT (id) DO UPDATE", "$6"} {
		if !strings.Contains(q, want) {
			t.Errorf("upsert query lacks %q:\n%s", want, q)
		}
	}
	if got := countSQL(`we"ird`); got != `SELECT COUNT(*) FROM "we""ird"` {
		t.Errorf("countSQL = %s", got)
	}
}
