package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"homeenergy/server/internal/models"
)

func TestJoinPredictionsUnknownHome(t *testing.T) {
	homes := []models.Home{{HomeID: 1, Address: "12 Elm Street"}}
	predictions := []models.Prediction{
		{PredictionID: 10, HomeID: 1, PredictedBill: 80},
		{PredictionID: 11, HomeID: 99, PredictedBill: 95},
	}

	views := JoinPredictions(NewHomeIndex(homes), predictions)

	assert.Len(t, views, 2)
	assert.Equal(t, "12 Elm Street", views[0].Address)
	assert.Equal(t, UnknownAddress, views[1].Address)
	assert.Equal(t, 95.0, views[1].PredictedBill)
}

func TestJoinBillsAndConsumption(t *testing.T) {
	idx := NewHomeIndex([]models.Home{{HomeID: 2, Address: "Flat 4"}})

	bills := JoinBills(idx, []models.BillRecord{{BillID: 1, HomeID: 2}, {BillID: 2, HomeID: 3}})
	assert.Equal(t, "Flat 4", bills[0].Address)
	assert.Equal(t, UnknownAddress, bills[1].Address)

	consumption := JoinConsumption(idx, []models.ConsumptionRecord{{HomeID: 2, KwhUsed: 200, BillAmount: 30}})
	assert.Equal(t, "Flat 4", consumption[0].Address)
	assert.InDelta(t, 0.15, consumption[0].CostPerKwh, 1e-9)
}

func TestHomeIndexDoesNotMutateHomes(t *testing.T) {
	homes := []models.Home{{HomeID: 1, Address: "A"}, {HomeID: 2, Address: "B"}}
	before := append([]models.Home(nil), homes...)

	idx := NewHomeIndex(homes)
	homes[0].Address = "changed"

	assert.Equal(t, "A", idx.AddressOf(1))
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, []uint{1, 2}, idx.IDs())
	homes[0].Address = "A"
	assert.Equal(t, before, homes)
}

func TestEmptyIndex(t *testing.T) {
	idx := NewHomeIndex(nil)
	_, ok := idx.Lookup(1)
	assert.False(t, ok)
	assert.Equal(t, UnknownAddress, idx.AddressOf(1))
	assert.Empty(t, JoinPredictions(idx, nil))
}

func TestHomeIndexIDsSortedAndDeduplicated(t *testing.T) {
	idx := NewHomeIndex([]models.Home{{HomeID: 9}, {HomeID: 3}, {HomeID: 9}, {HomeID: 5}})

	assert.Equal(t, []uint{3, 5, 9}, idx.IDs())
	assert.Equal(t, 3, idx.Len())
	h, ok := idx.Lookup(5)
	assert.True(t, ok)
	assert.Equal(t, uint(5), h.HomeID)
}
