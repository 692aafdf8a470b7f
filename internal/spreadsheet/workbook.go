package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrHeaderNotFound = errors.New("header row not found")
	ErrSheetNotFound  = errors.New("sheet not found")
)

type Workbook struct {
	f *excelize.File
}

func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &Workbook{f: f}, nil
}

func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	return &Workbook{f: f}, nil
}

func (w *Workbook) Close() error { return w.f.Close() }

// пустое имя означает активный лист
func (w *Workbook) sheetName(sheet string) (string, error) {
	if sheet == "" {
		return w.f.GetSheetName(w.f.GetActiveSheetIndex()), nil
	}
	idx, err := w.f.GetSheetIndex(sheet)
	if err != nil {
		return "", err
	}
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	return sheet, nil
}

// Match описывает найденную строку заголовка.
type Match struct {
	Index   int      // 0-based номер строки на листе
	Values  []string // непустые значения строки, обрезанные
	Columns []string // значения по позициям колонок, "" для пустых
}

// Row возвращает номер строки так, как его видит Excel.
func (m Match) Row() int { return m.Index + 1 }

// FindHeader идёт по строкам сверху вниз и возвращает первую,
// в которой среди непустых значений есть все markers. Дальше не смотрит.
func (w *Workbook) FindHeader(sheet string, markers ...string) (Match, error) {
	name, err := w.sheetName(sheet)
	if err != nil {
		return Match{}, err
	}
	rows, err := w.f.Rows(name)
	if err != nil {
		return Match{}, err
	}
	defer func() { _ = rows.Close() }()

	for idx := 0; rows.Next(); idx++ {
		cols, err := rows.Columns()
		if err != nil {
			return Match{}, fmt.Errorf("row %d: %w", idx+1, err)
		}
		trimmed := trimAll(cols)
		values := nonEmpty(trimmed)
		if containsAll(values, markers) {
			return Match{Index: idx, Values: values, Columns: trimmed}, nil
		}
	}
	if err := rows.Error(); err != nil {
		return Match{}, err
	}
	return Match{}, ErrHeaderNotFound
}

// ReadTable читает строки под заголовком m до первой полностью пустой строки.
// Ключами служат подписи колонок заголовка, колонки без подписи пропускаются.
func (w *Workbook) ReadTable(sheet string, m Match) ([]map[string]string, error) {
	name, err := w.sheetName(sheet)
	if err != nil {
		return nil, err
	}
	rows, err := w.f.GetRows(name)
	if err != nil {
		return nil, err
	}

	out := []map[string]string{}
	for i := m.Index + 1; i < len(rows); i++ {
		cells := trimAll(rows[i])
		if len(nonEmpty(cells)) == 0 {
			break
		}
		rec := make(map[string]string, len(m.Columns))
		for j, label := range m.Columns {
			if label == "" {
				continue
			}
			if j < len(cells) {
				rec[label] = cells[j]
			} else {
				rec[label] = ""
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func trimAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func nonEmpty(cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

func containsAll(values, markers []string) bool {
	for _, m := range markers {
		if !slices.Contains(values, m) {
			return false
		}
	}
	return true
}
