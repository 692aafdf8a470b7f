package products

import (
	"fmt"

	"github.com/Spok95/stock-migrate/internal/sqlgen"
)

var Columns = []string{
	"barcode", "name", "product_id", "uom_id", "uom_name",
	"quantity", "session_id", "userId", "location_id", "location_name",
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BuildInsert собирает INSERT по отфильтрованным записям.
// session_id всегда берётся из sessionID, собственная сессия записи игнорируется.
// Пустые строковые поля пишутся как '', отсутствующие числовые как NULL.
func BuildInsert(table string, sessionID int64, records []Record) (*sqlgen.Insert, error) {
	ins := sqlgen.NewInsert(table, Columns...)
	for i, r := range records {
		p := r.Product
		err := ins.Add(
			p.Barcode,
			strOrEmpty(p.Name),
			p.ProductID,
			p.UomID,
			strOrEmpty(p.UomName),
			p.Quantity,
			sessionID,
			p.UserID,
			p.LocationID,
			strOrEmpty(p.LocationName),
		)
		if err != nil {
			return nil, fmt.Errorf("product #%d (barcode %q): %w", i, p.Barcode, err)
		}
	}
	return ins, nil
}

// SQLiteSchema повторяет модель Product из приложения (Prisma) для пробного прогона.
func SQLiteSchema(table string) string {
	return fmt.Sprintf(`CREATE TABLE %s (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	product_id    INTEGER,
	barcode       TEXT NOT NULL,
	name          TEXT,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	quantity      REAL NOT NULL DEFAULT 1,
	uom_id        INTEGER,
	uom_name      TEXT,
	location_id   INTEGER,
	location_name TEXT,
	session_id    INTEGER,
	"userId"      INTEGER,
	document_id   INTEGER
)`, sqlgen.QuoteIdent(table))
}

// SheetHeader и SheetRows строят лист "Products" как в выгрузке Excel из админки.
var SheetHeader = []any{"Barcode", "Nama Produk", "Lokasi", "UoM", "Jumlah"}

func SheetRows(records []Record) [][]any {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			r.Barcode,
			strOrEmpty(r.Name),
			strOrEmpty(r.LocationName),
			strOrEmpty(r.UomName),
			r.Quantity.InexactFloat64(),
		})
	}
	return rows
}
