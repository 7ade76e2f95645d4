package aggregate

import (
	"fmt"
	"sort"

	"homeenergy/server/internal/models"
)

// ChartPoint is one period of the consumption chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Kwh   float64 `json:"kwh"`
	Bill  float64 `json:"bill"`
}

// PeriodLabel formats a month/year pair the way the charts label it.
func PeriodLabel(month, year int) string {
	return fmt.Sprintf("%d/%d", month, year)
}

// BuildSeries converts records fetched most recent first into chart points
// ordered oldest first. Records sharing a period are kept as separate points.
func BuildSeries(records []models.ConsumptionRecord) []ChartPoint {
	points := make([]ChartPoint, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		points = append(points, ChartPoint{
			Label: PeriodLabel(r.Month, r.Year),
			Kwh:   r.KwhUsed,
			Bill:  r.BillAmount,
		})
	}
	return points
}

type period struct {
	year, month int
}

// CombineByPeriod sums records across homes by (month, year) and returns one
// point per period in chronological order regardless of input order.
func CombineByPeriod(records []models.ConsumptionRecord) []ChartPoint {
	totals := make(map[period]*ChartPoint)
	var periods []period
	for _, r := range records {
		p := period{year: r.Year, month: r.Month}
		pt, ok := totals[p]
		if !ok {
			pt = &ChartPoint{Label: PeriodLabel(r.Month, r.Year)}
			totals[p] = pt
			periods = append(periods, p)
		}
		pt.Kwh += r.KwhUsed
		pt.Bill += r.BillAmount
	}

	sort.Slice(periods, func(i, j int) bool {
		if periods[i].year != periods[j].year {
			return periods[i].year < periods[j].year
		}
		return periods[i].month < periods[j].month
	})

	points := make([]ChartPoint, 0, len(periods))
	for _, p := range periods {
		points = append(points, *totals[p])
	}
	return points
}
