package uoms

import (
	"errors"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

var ErrCategoryMismatch = errors.New("uoms belong to different categories")

var one = decimal.NewFromInt(1)

// нулевой коэффициент в Odoo означает "не задан"
func orOne(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return one
	}
	return d
}

// ToReference переводит количество в опорную единицу категории.
func ToReference(qty decimal.Decimal, u Uom) decimal.Decimal {
	switch u.Type {
	case TypeBigger:
		return qty.Mul(orOne(u.FactorInv))
	case TypeSmaller:
		return qty.Div(orOne(u.Factor))
	}
	return qty
}

// FromReference переводит количество из опорной единицы в u.
func FromReference(qty decimal.Decimal, u Uom) decimal.Decimal {
	switch u.Type {
	case TypeBigger:
		return qty.Div(orOne(u.FactorInv))
	case TypeSmaller:
		return qty.Mul(orOne(u.Factor))
	}
	return qty
}

// Convert пересчитывает qty из from в to через опорную единицу.
// Между разными категориями пересчёта нет.
func Convert(qty decimal.Decimal, from, to Uom) (decimal.Decimal, error) {
	if from.ID == to.ID {
		return qty, nil
	}
	if from.CategoryID != to.CategoryID {
		return qty, ErrCategoryMismatch
	}
	return FromReference(ToReference(qty, from), to), nil
}

type Category struct {
	ID        int64
	Uoms      []Uom
	Reference *Uom
	Smaller   *Uom
}

// GroupByCategory раскладывает единицы по категориям и находит в каждой
// опорную и "меньшую" единицу. Категории отсортированы по ID.
func GroupByCategory(list []Uom) []Category {
	byID := make(map[int64]*Category)
	for _, u := range list {
		c, ok := byID[u.CategoryID]
		if !ok {
			c = &Category{ID: u.CategoryID}
			byID[u.CategoryID] = c
		}
		c.Uoms = append(c.Uoms, u)
		switch u.Type {
		case TypeReference:
			c.Reference = &u
		case TypeSmaller:
			c.Smaller = &u
		}
	}

	out := make([]Category, 0, len(byID))
	for _, id := range slices.Sorted(maps.Keys(byID)) {
		out = append(out, *byID[id])
	}
	return out
}
