package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"homeenergy/server/internal/models"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		homeCount int
		records   []models.ConsumptionRecord
		expected  Summary
	}{
		{
			name:     "Empty window",
			expected: Summary{TotalConsumption: "0.00", TotalBills: "0.00", AvgBill: "0.00"},
		},
		{
			name:      "Single record",
			homeCount: 1,
			records:   []models.ConsumptionRecord{{Month: 1, Year: 2024, KwhUsed: 100, BillAmount: 20}},
			expected:  Summary{TotalHomes: 1, TotalConsumption: "100.00", TotalBills: "20.00", AvgBill: "20.00"},
		},
		{
			name:      "Records across two homes",
			homeCount: 2,
			records: []models.ConsumptionRecord{
				{HomeID: 1, Month: 2, Year: 2024, KwhUsed: 310.5, BillAmount: 41.25},
				{HomeID: 2, Month: 2, Year: 2024, KwhUsed: 120.25, BillAmount: 18.5},
				{HomeID: 1, Month: 1, Year: 2024, KwhUsed: 290, BillAmount: 39},
			},
			expected: Summary{TotalHomes: 2, TotalConsumption: "720.75", TotalBills: "98.75", AvgBill: "32.92"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Summarize(tt.homeCount, tt.records))
		})
	}
}

func TestSummarizeFromLooselyTypedRow(t *testing.T) {
	rows := []map[string]any{{"month": 1, "year": 2024, "kwh_used": "100", "bill_amount": "20"}}

	summary := Summarize(1, ParseConsumptionRows(rows))

	assert.Equal(t, "100.00", summary.TotalConsumption)
	assert.Equal(t, "20.00", summary.TotalBills)
	assert.Equal(t, "20.00", summary.AvgBill)
}

func TestTotalKwhMatchesSum(t *testing.T) {
	records := []models.ConsumptionRecord{{KwhUsed: 1.1}, {KwhUsed: 2.2}, {KwhUsed: 3.3}, {KwhUsed: 0}}

	assert.InDelta(t, 6.6, TotalKwh(records), 1e-9)
	assert.Equal(t, 0.0, TotalKwh(nil))
}

func TestAvgBillEmpty(t *testing.T) {
	assert.Equal(t, 0.0, AvgBill(nil))
	assert.Equal(t, 0.0, AvgBill([]models.ConsumptionRecord{}))
	assert.InDelta(t, 15.0, AvgBill([]models.ConsumptionRecord{{BillAmount: 10}, {BillAmount: 20}}), 1e-9)
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	records := []models.ConsumptionRecord{{HomeID: 1, Month: 3, Year: 2024, KwhUsed: 10, BillAmount: 2}}
	before := append([]models.ConsumptionRecord(nil), records...)

	Summarize(1, records)
	BuildSeries(records)
	SummarizeHomes([]models.Home{{HomeID: 1}}, records)

	assert.Equal(t, before, records)
}
