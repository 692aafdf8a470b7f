package products

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Spok95/stock-migrate/internal/jsonrec"
)

var (
	ErrMissingField = jsonrec.ErrMissingField
	ErrInvalidField = jsonrec.ErrInvalidField
	ErrNotArray     = errors.New("expected a JSON array of records")
)

var fields = []string{
	"product_id", "barcode", "name", "quantity", "uom_id", "uom_name",
	"location_id", "location_name", "session_id", "userId",
}

// Decode строго разбирает JSON-массив позиций. Обязательны barcode и quantity,
// остальные поля могут отсутствовать или быть null.
func Decode(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	var raws []json.RawMessage
	if err := dec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if raws == nil {
		return nil, ErrNotArray
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parse json: unexpected data after array")
	}

	out := make([]Record, 0, len(raws))
	for i, raw := range raws {
		p, err := decodeOne(raw)
		if err != nil {
			return nil, fmt.Errorf("product #%d: %w", i, err)
		}
		out = append(out, Record{Product: p, Raw: raw})
	}
	return out, nil
}

// decodeOne читает поля по точным именам: "USERID" или "quantity": "2" это ошибка,
// а не молча принятая запись.
func decodeOne(raw json.RawMessage) (Product, error) {
	o, err := jsonrec.Parse(raw, fields...)
	if err != nil {
		return Product{}, err
	}

	var p Product
	barcode, err := o.String("barcode")
	if err != nil {
		return p, err
	}
	if barcode == nil {
		return p, fmt.Errorf("%w %q", ErrMissingField, "barcode")
	}
	p.Barcode = *barcode

	quantity, err := o.Decimal("quantity")
	if err != nil {
		return p, err
	}
	if quantity == nil {
		return p, fmt.Errorf("%w %q", ErrMissingField, "quantity")
	}
	p.Quantity = *quantity

	strs := []struct {
		key string
		dst **string
	}{
		{"name", &p.Name},
		{"uom_name", &p.UomName},
		{"location_name", &p.LocationName},
	}
	for _, f := range strs {
		if *f.dst, err = o.String(f.key); err != nil {
			return p, err
		}
	}

	ints := []struct {
		key string
		dst **int64
	}{
		{"product_id", &p.ProductID},
		{"uom_id", &p.UomID},
		{"location_id", &p.LocationID},
		{"session_id", &p.SessionID},
		{"userId", &p.UserID},
	}
	for _, f := range ints {
		if *f.dst, err = o.Int(f.key); err != nil {
			return p, err
		}
	}
	return p, nil
}
