// Package sqlcheck прогоняет сгенерированный SQL на SQLite в памяти,
// чтобы битый скрипт не дошёл до настоящей базы.
package sqlcheck

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Spok95/stock-migrate/internal/sqlgen"

	_ "modernc.org/sqlite"
)

// Check создаёт таблицу по schema, выполняет script и возвращает число строк в table.
func Check(ctx context.Context, schema, script, table string) (int, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return 0, fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()
	// :memory: живёт в пределах одного соединения
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return 0, fmt.Errorf("create schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, script); err != nil {
		return 0, fmt.Errorf("exec script: %w", err)
	}

	var n int
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, sqlgen.QuoteIdent(table))
	if err := db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}
