package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"homeenergy/server/internal/models"
)

func labels(points []ChartPoint) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		out = append(out, p.Label)
	}
	return out
}

func TestBuildSeriesReversesOrder(t *testing.T) {
	records := []models.ConsumptionRecord{
		{Month: 3, Year: 2024, KwhUsed: 30, BillAmount: 3},
		{Month: 2, Year: 2024, KwhUsed: 20, BillAmount: 2},
		{Month: 1, Year: 2024, KwhUsed: 10, BillAmount: 1},
	}

	points := BuildSeries(records)

	assert.Equal(t, []string{"1/2024", "2/2024", "3/2024"}, labels(points))
	assert.Equal(t, 10.0, points[0].Kwh)
	assert.Equal(t, 3.0, points[2].Bill)
}

func TestBuildSeriesKeepsSharedPeriodsSeparate(t *testing.T) {
	records := []models.ConsumptionRecord{
		{HomeID: 1, Month: 5, Year: 2024, KwhUsed: 100},
		{HomeID: 2, Month: 5, Year: 2024, KwhUsed: 50},
	}

	points := BuildSeries(records)

	assert.Len(t, points, 2)
	assert.Equal(t, []string{"5/2024", "5/2024"}, labels(points))
}

func TestBuildSeriesEmpty(t *testing.T) {
	points := BuildSeries(nil)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestCombineByPeriod(t *testing.T) {
	records := []models.ConsumptionRecord{
		{HomeID: 1, Month: 1, Year: 2024, KwhUsed: 100, BillAmount: 12},
		{HomeID: 2, Month: 12, Year: 2023, KwhUsed: 80, BillAmount: 10},
		{HomeID: 2, Month: 1, Year: 2024, KwhUsed: 50, BillAmount: 6},
	}

	points := CombineByPeriod(records)

	assert.Equal(t, []string{"12/2023", "1/2024"}, labels(points))
	assert.InDelta(t, 150.0, points[1].Kwh, 1e-9)
	assert.InDelta(t, 18.0, points[1].Bill, 1e-9)
}
