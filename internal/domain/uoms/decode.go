package uoms

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

var fields = []string{"id", "name", "category_id", "uom_type", "factor_inv", "factor"}

// Decode строго разбирает JSON-массив единиц измерения.
// Любая кривая запись валит весь разбор: частичного результата нет.
func Decode(r io.Reader) ([]Uom, error) {
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

	out := make([]Uom, 0, len(raws))
	for i, raw := range raws {
		u, err := decodeOne(raw)
		if err != nil {
			return nil, fmt.Errorf("uom #%d: %w", i, err)
		}
		out = append(out, u)
	}
	return out, nil
}

func decodeOne(raw json.RawMessage) (Uom, error) {
	o, err := jsonrec.Parse(raw, fields...)
	if err != nil {
		return Uom{}, err
	}

	id, err := o.Int("id")
	if err != nil {
		return Uom{}, err
	}
	name, err := o.String("name")
	if err != nil {
		return Uom{}, err
	}
	category, err := o.Array("category_id")
	if err != nil {
		return Uom{}, err
	}
	uomType, err := o.String("uom_type")
	if err != nil {
		return Uom{}, err
	}
	factorInv, err := o.Decimal("factor_inv")
	if err != nil {
		return Uom{}, err
	}
	factor, err := o.Decimal("factor")
	if err != nil {
		return Uom{}, err
	}

	switch {
	case id == nil:
		return Uom{}, fmt.Errorf("%w %q", ErrMissingField, "id")
	case name == nil:
		return Uom{}, fmt.Errorf("%w %q", ErrMissingField, "name")
	case category == nil:
		return Uom{}, fmt.Errorf("%w %q", ErrMissingField, "category_id")
	case uomType == nil:
		return Uom{}, fmt.Errorf("%w %q", ErrMissingField, "uom_type")
	case factorInv == nil:
		return Uom{}, fmt.Errorf("%w %q", ErrMissingField, "factor_inv")
	case factor == nil:
		return Uom{}, fmt.Errorf("%w %q", ErrMissingField, "factor")
	}

	if len(category) == 0 {
		return Uom{}, fmt.Errorf("%w %q: empty", ErrInvalidField, "category_id")
	}
	categoryID, err := jsonrec.Int(category[0])
	if err != nil {
		return Uom{}, fmt.Errorf("%w %q: first element is not an integer", ErrInvalidField, "category_id")
	}

	t := Type(*uomType)
	if !t.Valid() {
		return Uom{}, fmt.Errorf("%w %q: unknown type %q", ErrInvalidField, "uom_type", *uomType)
	}

	return Uom{
		ID:         *id,
		Name:       *name,
		CategoryID: categoryID,
		Type:       t,
		FactorInv:  *factorInv,
		Factor:     *factor,
	}, nil
}
