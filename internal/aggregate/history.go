package aggregate

import "homeenergy/server/internal/models"

// HistoryTotals are the two-decimal totals shown above the history table.
type HistoryTotals struct {
	TotalKwh  string `json:"total_kwh"`
	TotalBill string `json:"total_bill"`
	AvgBill   string `json:"avg_bill"`
}

// SummarizeHistory totals kWh and bills for one year of records.
func SummarizeHistory(records []models.ConsumptionRecord) HistoryTotals {
	kwh, bills := sumRecords(records)
	return HistoryTotals{
		TotalKwh:  kwh.StringFixed(2),
		TotalBill: bills.StringFixed(2),
		AvgBill:   formatAmount(AvgBill(records)),
	}
}

// CostPerKwh is the effective unit price of a record, 0 when no energy was used.
func CostPerKwh(r models.ConsumptionRecord) float64 {
	if r.KwhUsed == 0 {
		return 0
	}
	return r.BillAmount / r.KwhUsed
}
