package sqlgen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrUnsupported = errors.New("unsupported value type")
	ErrNulByte     = errors.New("string contains NUL byte")
	ErrNotFinite   = errors.New("number is not finite")
)

// Literal превращает значение Go в SQL-литерал.
// nil и nil-указатели дают NULL для любого поля, не только строкового.
func Literal(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return quoteString(x)
	case *string:
		if x == nil {
			return "NULL", nil
		}
		return quoteString(*x)
	case int:
		return strconv.Itoa(x), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case *int64:
		if x == nil {
			return "NULL", nil
		}
		return strconv.FormatInt(*x, 10), nil
	case float64:
		return formatFloat(x)
	case *float64:
		if x == nil {
			return "NULL", nil
		}
		return formatFloat(*x)
	case decimal.Decimal:
		return x.String(), nil
	case *decimal.Decimal:
		if x == nil {
			return "NULL", nil
		}
		return x.String(), nil
	case bool:
		if x {
			return "TRUE", nil
		}
		return "FALSE", nil
	case *bool:
		if x == nil {
			return "NULL", nil
		}
		return Literal(*x)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
}

func quoteString(s string) (string, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return "", ErrNulByte
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'", nil
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", ErrNotFinite
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

var simpleIdent = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ключевые слова, которые нельзя оставлять без кавычек в Postgres
var reserved = map[string]struct{}{
	"all": {}, "and": {}, "as": {}, "case": {}, "check": {}, "column": {},
	"constraint": {}, "create": {}, "default": {}, "desc": {}, "distinct": {},
	"do": {}, "else": {}, "end": {}, "false": {}, "for": {}, "foreign": {},
	"from": {}, "grant": {}, "group": {}, "having": {}, "in": {}, "into": {},
	"limit": {}, "not": {}, "null": {}, "offset": {}, "on": {}, "or": {},
	"order": {}, "primary": {}, "references": {}, "select": {}, "table": {},
	"then": {}, "to": {}, "true": {}, "union": {}, "unique": {}, "user": {},
	"using": {}, "when": {}, "where": {}, "with": {},
}

// QuoteIdent оставляет простые имена как есть ("uoms", "barcode"),
// остальные берёт в двойные кавычки ("Product", "userId").
func QuoteIdent(name string) string {
	if simpleIdent.MatchString(name) {
		if _, ok := reserved[name]; !ok {
			return name
		}
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
