package uoms

import "github.com/shopspring/decimal"

type Type string

const (
	TypeReference Type = "reference"
	TypeBigger    Type = "bigger"
	TypeSmaller   Type = "smaller"
)

func (t Type) Valid() bool {
	switch t {
	case TypeReference, TypeBigger, TypeSmaller:
		return true
	}
	return false
}

// Uom это единица измерения из выгрузки Odoo (uom.uom).
type Uom struct {
	ID         int64
	Name       string
	CategoryID int64 // первый элемент пары [id, "name"]
	Type       Type
	FactorInv  decimal.Decimal
	Factor     decimal.Decimal
}
