package products

import (
	"encoding/json"
	"fmt"
)

// FilterByUser оставляет записи пользователя userID в исходном порядке.
// Записи без userId не подходят никому.
func FilterByUser(records []Record, userID int64) []Record {
	out := make([]Record, 0)
	for _, r := range records {
		if r.UserID != nil && *r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// MarshalRecords сериализует записи обратно в JSON-массив без потери полей.
func MarshalRecords(records []Record) ([]byte, error) {
	raws := make([]json.RawMessage, len(records))
	for i, r := range records {
		raws[i] = r.Raw
	}
	data, err := json.MarshalIndent(raws, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal products: %w", err)
	}
	return append(data, '\n'), nil
}
