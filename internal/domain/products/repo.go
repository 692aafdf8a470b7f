package products

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

// InsertMany вставляет записи одной транзакцией с той же подменой session_id,
// что и текстовый INSERT. Либо всё, либо ничего.
func (r *Repo) InsertMany(ctx context.Context, sessionID int64, records []Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := insertSQL(r.table)

	batch := &pgx.Batch{}
	for _, rec := range records {
		p := rec.Product
		batch.Queue(q,
			p.Barcode, strOrEmpty(p.Name), p.ProductID, p.UomID, strOrEmpty(p.UomName),
			p.Quantity.InexactFloat64(), sessionID, p.UserID, p.LocationID, strOrEmpty(p.LocationName),
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range records {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return 0, fmt.Errorf("product #%d (barcode %q): %w", i, records[i].Barcode, err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(records), nil
}

// CountBySession считает позиции в сессии, нужен для проверки после заливки.
func (r *Repo) CountBySession(ctx context.Context, sessionID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, countBySessionSQL(r.table), sessionID).Scan(&n)
	return n, err
}

func insertSQL(table string) string {
	return fmt.Sprintf(`
		INSERT INTO %s (barcode, name, product_id, uom_id, uom_name, quantity, session_id, "userId", location_id, location_name)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, pgx.Identifier{table}.Sanitize())
}

func countBySessionSQL(table string) string {
	return fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE session_id = $1`, pgx.Identifier{table}.Sanitize())
}
