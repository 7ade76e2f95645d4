package aggregate

import (
	"sort"
	"strings"

	"homeenergy/server/internal/models"
)

// ImpactSlice is one appliance type's share of daily energy use.
type ImpactSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DailyKwh estimates one appliance entry's daily draw in kWh.
func DailyKwh(a models.Appliance) float64 {
	return a.Wattage * a.AvgHoursPerDay * float64(a.Quantity) / 1000
}

// ApplianceLabel normalizes an appliance type for grouping and display.
func ApplianceLabel(applianceType string) string {
	key := strings.ToLower(strings.TrimSpace(applianceType))
	if key == "" {
		key = "other"
	}
	return strings.ReplaceAll(key, "_", " ")
}

// ApplianceImpact groups appliances by type and sums their daily kWh.
// Slices are ordered by value descending, then name, so the result does not
// depend on input order.
func ApplianceImpact(appliances []models.Appliance) []ImpactSlice {
	groups := make(map[string]float64)
	for _, a := range appliances {
		groups[ApplianceLabel(a.ApplianceType)] += DailyKwh(a)
	}

	out := make([]ImpactSlice, 0, len(groups))
	for name, value := range groups {
		out = append(out, ImpactSlice{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TotalAppliances counts units across entries, which is what the
// prediction service expects as num_appliances.
func TotalAppliances(appliances []models.Appliance) int {
	total := 0
	for _, a := range appliances {
		total += a.Quantity
	}
	return total
}
