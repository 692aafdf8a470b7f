package uoms

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool  *pgxpool.Pool
	table string
}

func NewRepo(pool *pgxpool.Pool, table string) *Repo { return &Repo{pool: pool, table: table} }

// Upsert заливает все единицы одной транзакцией; существующие id перезаписываются.
func (r *Repo) Upsert(ctx context.Context, list []Uom) (int, error) {
	if len(list) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := upsertSQL(r.table)

	batch := &pgx.Batch{}
	for _, u := range list {
		batch.Queue(q, u.ID, u.Name, u.CategoryID, string(u.Type),
			u.FactorInv.InexactFloat64(), u.Factor.InexactFloat64())
	}

	br := tx.SendBatch(ctx, batch)
	for i := range list {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return 0, fmt.Errorf("uom #%d (id %d): %w", i, list[i].ID, err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(list), nil
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, countSQL(r.table)).Scan(&n)
	return n, err
}

func upsertSQL(table string) string {
	return fmt.Sprintf(`
		INSERT INTO %s (id, name, category_id, uom_type, factor_inv, factor)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
		  name=EXCLUDED.name, category_id=EXCLUDED.category_id, uom_type=EXCLUDED.uom_type,
		  factor_inv=EXCLUDED.factor_inv, factor=EXCLUDED.factor
	`, pgx.Identifier{table}.Sanitize())
}

func countSQL(table string) string {
	return fmt.Sprintf(`SELECT COUNT(*) FROM %s`, pgx.Identifier{table}.Sanitize())
}
