package products

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product это отсканированная позиция из приложения инвентаризации.
type Product struct {
	ProductID    *int64 // ID товара в Odoo
	Barcode      string
	Name         *string
	Quantity     decimal.Decimal
	UomID        *int64
	UomName      *string
	LocationID   *int64
	LocationName *string
	SessionID    *int64
	UserID       *int64
}

// Record хранит исходный JSON записи, чтобы выгрузить её без потерь.
type Record struct {
	Product
	Raw json.RawMessage
}
