package aggregate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"homeenergy/server/internal/models"
)

// ToFloat coerces a loosely typed value into a float64. Strings are parsed,
// and anything missing, non-numeric or non-finite becomes 0.
func ToFloat(v any) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ToInt coerces like ToFloat and truncates toward zero.
func ToInt(v any) int {
	return int(ToFloat(v))
}

// ParseConsumptionRow builds a typed record from a loosely typed row such as
// a decoded JSON object. Unknown keys are ignored.
func ParseConsumptionRow(row map[string]any) models.ConsumptionRecord {
	return models.ConsumptionRecord{
		HomeID:     uint(math.Max(0, ToFloat(row["home_id"]))),
		Month:      ToInt(row["month"]),
		Year:       ToInt(row["year"]),
		KwhUsed:    ToFloat(row["kwh_used"]),
		BillAmount: ToFloat(row["bill_amount"]),
	}
}

// ParseConsumptionRows applies ParseConsumptionRow to every row.
func ParseConsumptionRows(rows []map[string]any) []models.ConsumptionRecord {
	records := make([]models.ConsumptionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, ParseConsumptionRow(row))
	}
	return records
}
