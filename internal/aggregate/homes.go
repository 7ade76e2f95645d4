package aggregate

import (
	"github.com/shopspring/decimal"

	"homeenergy/server/internal/models"
)

// HomeSummary is a home with its totals over the consumption window.
type HomeSummary struct {
	models.Home
	TotalKwh    string `json:"total_kwh"`
	TotalBill   string `json:"total_bill"`
	RecordCount int    `json:"record_count"`
}

type homeTotals struct {
	kwh, bill decimal.Decimal
	count     int
}

// SummarizeHomes attaches per-home totals from the consumption window to
// each home. Every input home appears once, in input order.
func SummarizeHomes(homes []models.Home, records []models.ConsumptionRecord) []HomeSummary {
	byHome := make(map[uint]*homeTotals, len(homes))
	for _, r := range records {
		t, ok := byHome[r.HomeID]
		if !ok {
			t = &homeTotals{kwh: decimal.Zero, bill: decimal.Zero}
			byHome[r.HomeID] = t
		}
		t.kwh = t.kwh.Add(decimal.NewFromFloat(r.KwhUsed))
		t.bill = t.bill.Add(decimal.NewFromFloat(r.BillAmount))
		t.count++
	}

	out := make([]HomeSummary, 0, len(homes))
	for _, h := range homes {
		s := HomeSummary{Home: h, TotalKwh: "0.00", TotalBill: "0.00"}
		if t, ok := byHome[h.HomeID]; ok {
			s.TotalKwh = t.kwh.StringFixed(2)
			s.TotalBill = t.bill.StringFixed(2)
			s.RecordCount = t.count
		}
		out = append(out, s)
	}
	return out
}
