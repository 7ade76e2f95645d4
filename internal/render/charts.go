// Package render produces the downloadable artifacts of the tracker:
// PNG charts, the XLSX history export and the GeoJSON homes map.
package render

import (
	"errors"
	"fmt"

	"github.com/vicanso/go-charts/v2"

	"homeenergy/server/internal/aggregate"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data to render")

// ChartOptions sets the size and theme of rendered charts.
type ChartOptions struct {
	Width  int
	Height int
	Theme  string
}

// DefaultChartOptions returns a 1200x400 light chart.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 1200, Height: 400, Theme: "light"}
}

func (o ChartOptions) common(title string) []charts.OptionFunc {
	return []charts.OptionFunc{
		charts.PNGTypeOption(),
		charts.TitleTextOptionFunc(title),
		charts.ThemeOptionFunc(o.Theme),
		charts.WidthOptionFunc(o.Width),
		charts.HeightOptionFunc(o.Height),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	}
}

// ConsumptionChart draws kWh and bill per period as two lines.
func ConsumptionChart(points []aggregate.ChartPoint, opts ChartOptions) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}

	labels := make([]string, 0, len(points))
	kwh := make([]float64, 0, len(points))
	bills := make([]float64, 0, len(points))
	for _, p := range points {
		labels = append(labels, p.Label)
		kwh = append(kwh, p.Kwh)
		bills = append(bills, p.Bill)
	}

	options := append(opts.common("Energy Consumption"),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Consumption (kWh)", "Bill"}, charts.PositionRight),
	)
	p, err := charts.LineRender([][]float64{kwh, bills}, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to render consumption chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return buf, nil
}

// ApplianceChart draws the daily kWh share of each appliance type.
func ApplianceChart(slices []aggregate.ImpactSlice, opts ChartOptions) ([]byte, error) {
	if len(slices) == 0 {
		return nil, ErrNoData
	}

	names := make([]string, 0, len(slices))
	values := make([]float64, 0, len(slices))
	for _, s := range slices {
		names = append(names, s.Name)
		values = append(values, s.Value)
	}

	options := append(opts.common("Daily Appliance Usage (kWh)"),
		charts.LegendLabelsOptionFunc(names, charts.PositionRight),
	)
	p, err := charts.PieRender(values, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to render appliance chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return buf, nil
}
