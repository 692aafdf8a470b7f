package uoms

import (
	"fmt"

	"github.com/Spok95/stock-migrate/internal/sqlgen"
)

// Columns задаёт порядок колонок в INSERT, он совпадает с порядком полей записи.
var Columns = []string{"id", "name", "category_id", "uom_type", "factor_inv", "factor"}

// BuildInsert делает один INSERT с кортежем на каждую запись, порядок входа сохраняется.
func BuildInsert(table string, list []Uom) (*sqlgen.Insert, error) {
	ins := sqlgen.NewInsert(table, Columns...)
	for i, u := range list {
		if err := ins.Add(u.ID, u.Name, u.CategoryID, string(u.Type), u.FactorInv, u.Factor); err != nil {
			return nil, fmt.Errorf("uom #%d (id %d): %w", i, u.ID, err)
		}
	}
	return ins, nil
}

// SQLiteSchema повторяет целевую таблицу для пробного прогона скрипта.
func SQLiteSchema(table string) string {
	return fmt.Sprintf(`CREATE TABLE %s (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	category_id INTEGER NOT NULL,
	uom_type    TEXT NOT NULL CHECK (uom_type IN ('reference','bigger','smaller')),
	factor_inv  REAL NOT NULL,
	factor      REAL NOT NULL
)`, sqlgen.QuoteIdent(table))
}
