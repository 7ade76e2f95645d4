// Package aggregate turns fetched rows into the stats, chart series and
// joined records shown by the views. Every function here is pure: inputs
// are never mutated and nothing performs I/O.
package aggregate

import (
	"github.com/shopspring/decimal"

	"homeenergy/server/internal/models"
)

// Summary is the dashboard stat card block. Amounts are two-decimal strings.
type Summary struct {
	TotalHomes       int    `json:"totalHomes"`
	TotalConsumption string `json:"totalConsumption"`
	TotalBills       string `json:"totalBills"`
	AvgBill          string `json:"avgBill"`
}

// Summarize totals kWh and bills over the given consumption window and
// averages the bill per record. An empty window yields zeros.
func Summarize(homeCount int, records []models.ConsumptionRecord) Summary {
	totalKwh, totalBills := sumRecords(records)

	avg := decimal.Zero
	if len(records) > 0 {
		avg = totalBills.Div(decimal.NewFromInt(int64(len(records))))
	}

	return Summary{
		TotalHomes:       homeCount,
		TotalConsumption: totalKwh.StringFixed(2),
		TotalBills:       totalBills.StringFixed(2),
		AvgBill:          avg.StringFixed(2),
	}
}

// TotalKwh returns the exact sum of kWh over records.
func TotalKwh(records []models.ConsumptionRecord) float64 {
	kwh, _ := sumRecords(records)
	return kwh.InexactFloat64()
}

// AvgBill returns the mean bill per record, or 0 for no records.
func AvgBill(records []models.ConsumptionRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	_, bills := sumRecords(records)
	return bills.Div(decimal.NewFromInt(int64(len(records)))).InexactFloat64()
}

func sumRecords(records []models.ConsumptionRecord) (kwh, bills decimal.Decimal) {
	kwh, bills = decimal.Zero, decimal.Zero
	for _, r := range records {
		kwh = kwh.Add(decimal.NewFromFloat(r.KwhUsed))
		bills = bills.Add(decimal.NewFromFloat(r.BillAmount))
	}
	return kwh, bills
}

func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
