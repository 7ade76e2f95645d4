package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeenergy/server/internal/models"
)

func TestSummarizeHomes(t *testing.T) {
	homes := []models.Home{
		{HomeID: 1, Address: "A"},
		{HomeID: 2, Address: "B"},
		{HomeID: 3, Address: "C"},
	}
	records := []models.ConsumptionRecord{
		{HomeID: 1, KwhUsed: 100, BillAmount: 12.5},
		{HomeID: 2, KwhUsed: 40, BillAmount: 5},
		{HomeID: 1, KwhUsed: 50.25, BillAmount: 6},
		{HomeID: 42, KwhUsed: 999, BillAmount: 999},
	}

	summaries := SummarizeHomes(homes, records)

	require.Len(t, summaries, len(homes))
	seen := map[uint]bool{}
	for i, s := range summaries {
		assert.Equal(t, homes[i].HomeID, s.HomeID)
		assert.False(t, seen[s.HomeID])
		seen[s.HomeID] = true
	}
	assert.Equal(t, "150.25", summaries[0].TotalKwh)
	assert.Equal(t, "18.50", summaries[0].TotalBill)
	assert.Equal(t, 2, summaries[0].RecordCount)
	assert.Equal(t, "40.00", summaries[1].TotalKwh)
	assert.Equal(t, "0.00", summaries[2].TotalKwh)
	assert.Equal(t, "0.00", summaries[2].TotalBill)
	assert.Equal(t, "C", summaries[2].Address)
}

func TestSummarizeHomesEmpty(t *testing.T) {
	assert.Empty(t, SummarizeHomes(nil, []models.ConsumptionRecord{{HomeID: 1}}))
}

func TestSummarizeHistory(t *testing.T) {
	totals := SummarizeHistory([]models.ConsumptionRecord{
		{KwhUsed: 200, BillAmount: 30},
		{KwhUsed: 100, BillAmount: 15},
	})
	assert.Equal(t, HistoryTotals{TotalKwh: "300.00", TotalBill: "45.00", AvgBill: "22.50"}, totals)

	assert.Equal(t, HistoryTotals{TotalKwh: "0.00", TotalBill: "0.00", AvgBill: "0.00"}, SummarizeHistory(nil))
}

func TestCostPerKwhZeroUsage(t *testing.T) {
	assert.Equal(t, 0.0, CostPerKwh(models.ConsumptionRecord{KwhUsed: 0, BillAmount: 12}))
}
