package aggregate

import (
	"sort"

	"homeenergy/server/internal/models"
)

// UnknownAddress labels records whose home is not in the fetched list.
const UnknownAddress = "Unknown"

// HomeIndex maps home identifiers to homes for one render cycle.
type HomeIndex struct {
	homes map[uint]models.Home
}

// NewHomeIndex builds the lookup once; the slice itself is not retained.
func NewHomeIndex(homes []models.Home) HomeIndex {
	idx := HomeIndex{homes: make(map[uint]models.Home, len(homes))}
	for _, h := range homes {
		idx.homes[h.HomeID] = h
	}
	return idx
}

// Lookup returns the indexed home with the given id.
func (x HomeIndex) Lookup(id uint) (models.Home, bool) {
	h, ok := x.homes[id]
	return h, ok
}

// AddressOf returns the home's address, or UnknownAddress when the home
// was not fetched.
func (x HomeIndex) AddressOf(id uint) string {
	if h, ok := x.Lookup(id); ok {
		return h.Address
	}
	return UnknownAddress
}

// IDs returns the indexed home ids in ascending order.
func (x HomeIndex) IDs() []uint {
	ids := make([]uint, 0, len(x.homes))
	for id := range x.homes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len is the number of distinct homes indexed.
func (x HomeIndex) Len() int {
	return len(x.homes)
}

// PredictionView is a prediction with its home's address.
type PredictionView struct {
	models.Prediction
	Address string `json:"address"`
}

// BillView is a bill with its home's address.
type BillView struct {
	models.BillRecord
	Address string `json:"address"`
}

// ConsumptionView is a consumption record with its address and unit price.
type ConsumptionView struct {
	models.ConsumptionRecord
	Address    string  `json:"address"`
	CostPerKwh float64 `json:"cost_per_kwh"`
}

// JoinPredictions attaches addresses to predictions.
func JoinPredictions(idx HomeIndex, predictions []models.Prediction) []PredictionView {
	out := make([]PredictionView, 0, len(predictions))
	for _, p := range predictions {
		out = append(out, PredictionView{Prediction: p, Address: idx.AddressOf(p.HomeID)})
	}
	return out
}

// JoinBills attaches addresses to bills.
func JoinBills(idx HomeIndex, bills []models.BillRecord) []BillView {
	out := make([]BillView, 0, len(bills))
	for _, b := range bills {
		out = append(out, BillView{BillRecord: b, Address: idx.AddressOf(b.HomeID)})
	}
	return out
}

// JoinConsumption attaches addresses and cost per kWh to records.
func JoinConsumption(idx HomeIndex, records []models.ConsumptionRecord) []ConsumptionView {
	out := make([]ConsumptionView, 0, len(records))
	for _, r := range records {
		out = append(out, ConsumptionView{
			ConsumptionRecord: r,
			Address:           idx.AddressOf(r.HomeID),
			CostPerKwh:        CostPerKwh(r),
		})
	}
	return out
}
