package sqlgen

import (
	"fmt"
	"io"
	"strings"
)

// Insert собирает один многострочный INSERT ... VALUES.
type Insert struct {
	table   string
	columns []string
	tuples  []string
}

func NewInsert(table string, columns ...string) *Insert {
	return &Insert{table: table, columns: columns}
}

// Add добавляет кортеж; количество значений должно совпадать с колонками.
func (ins *Insert) Add(values ...any) error {
	if len(values) != len(ins.columns) {
		return fmt.Errorf("tuple %d: got %d values for %d columns",
			len(ins.tuples)+1, len(values), len(ins.columns))
	}
	parts := make([]string, len(values))
	for i, v := range values {
		lit, err := Literal(v)
		if err != nil {
			return fmt.Errorf("tuple %d column %s: %w", len(ins.tuples)+1, ins.columns[i], err)
		}
		parts[i] = lit
	}
	ins.tuples = append(ins.tuples, "("+strings.Join(parts, ", ")+")")
	return nil
}

func (ins *Insert) Len() int { return len(ins.tuples) }

func (ins *Insert) Table() string { return ins.table }

// String отдаёт готовый скрипт. Для пустого набора выходит только комментарий,
// такой файл безопасно выполнить.
func (ins *Insert) String() string {
	var b strings.Builder
	if len(ins.tuples) == 0 {
		name := strings.NewReplacer("\n", " ", "\r", " ").Replace(ins.table)
		b.WriteString("-- " + name + ": no rows to insert\n")
		return b.String()
	}

	cols := make([]string, len(ins.columns))
	for i, c := range ins.columns {
		cols[i] = QuoteIdent(c)
	}
	b.WriteString("INSERT INTO ")
	b.WriteString(QuoteIdent(ins.table))
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES\n")
	b.WriteString(strings.Join(ins.tuples, ",\n"))
	b.WriteString(";\n")
	return b.String()
}

func (ins *Insert) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, ins.String())
	return int64(n), err
}
