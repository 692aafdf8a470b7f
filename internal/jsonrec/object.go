// Package jsonrec читает одну JSON-запись по точным именам ключей.
// encoding/json сопоставляет поля без учёта регистра и разрешает числа в кавычках,
// здесь и то и другое считается ошибкой.
package jsonrec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidField = errors.New("invalid field")
)

type Object struct {
	fields map[string]json.RawMessage
}

// Parse разбирает объект. Ключ, совпадающий с одним из known только без учёта
// регистра ("BARCODE", "userid"), отвергается. Прочие неизвестные ключи пропускаются.
func Parse(raw json.RawMessage, known ...string) (Object, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return Object{}, fmt.Errorf("%w: record is not an object", ErrInvalidField)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Object{}, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	for key := range fields {
		for _, k := range known {
			if key != k && strings.EqualFold(key, k) {
				return Object{}, fmt.Errorf("%w %q: expected key %q", ErrInvalidField, key, k)
			}
		}
	}
	return Object{fields: fields}, nil
}

// value возвращает nil для отсутствующего ключа и для null.
func (o Object) value(key string) json.RawMessage {
	v, ok := o.fields[key]
	if !ok {
		return nil
	}
	v = bytes.TrimSpace(v)
	if bytes.Equal(v, []byte("null")) {
		return nil
	}
	return v
}

func (o Object) String(key string) (*string, error) {
	v := o.value(key)
	if v == nil {
		return nil, nil
	}
	if v[0] != '"' {
		return nil, fmt.Errorf("%w %q: expected string", ErrInvalidField, key)
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidField, key, err)
	}
	return &s, nil
}

func (o Object) Int(key string) (*int64, error) {
	v := o.value(key)
	if v == nil {
		return nil, nil
	}
	n, err := Int(v)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidField, key, err)
	}
	return &n, nil
}

func (o Object) Decimal(key string) (*decimal.Decimal, error) {
	v := o.value(key)
	if v == nil {
		return nil, nil
	}
	if !isNumber(v) {
		return nil, fmt.Errorf("%w %q: expected number", ErrInvalidField, key)
	}
	d, err := decimal.NewFromString(string(v))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidField, key, err)
	}
	return &d, nil
}

// Array отдаёт элементы массива как есть; nil, если ключа нет или там null.
func (o Object) Array(key string) ([]json.RawMessage, error) {
	v := o.value(key)
	if v == nil {
		return nil, nil
	}
	if v[0] != '[' {
		return nil, fmt.Errorf("%w %q: expected array", ErrInvalidField, key)
	}
	items := []json.RawMessage{}
	if err := json.Unmarshal(v, &items); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidField, key, err)
	}
	return items, nil
}

// Int разбирает целое JSON-число. Строки, дроби и экспонента не принимаются.
func Int(v json.RawMessage) (int64, error) {
	v = bytes.TrimSpace(v)
	if !isNumber(v) {
		return 0, errors.New("expected integer")
	}
	return strconv.ParseInt(string(v), 10, 64)
}

func isNumber(v []byte) bool {
	return len(v) > 0 && (v[0] == '-' || (v[0] >= '0' && v[0] <= '9'))
}
