package aggregate

import "github.com/shopspring/decimal"

// KwhRate is the flat price per kWh used to turn a predicted bill into an
// energy figure for display. It is an approximation, not a tariff: real
// bills include standing charges and time-of-use rates.
const KwhRate = 0.12

// EstimateKwh converts a bill amount to kWh at KwhRate, rounded to cents of a kWh.
func EstimateKwh(bill float64) float64 {
	return decimal.NewFromFloat(bill).
		Div(decimal.NewFromFloat(KwhRate)).
		Round(2).
		InexactFloat64()
}

// EstimateKwhString is EstimateKwh formatted with two decimals.
func EstimateKwhString(bill float64) string {
	return decimal.NewFromFloat(bill).Div(decimal.NewFromFloat(KwhRate)).StringFixed(2)
}

// Season names a time of year and its consumption factor.
type Season struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

var (
	Winter = Season{Name: "Winter", Factor: 1.4}
	Spring = Season{Name: "Spring", Factor: 0.9}
	Summer = Season{Name: "Summer", Factor: 1.3}
	Fall   = Season{Name: "Fall", Factor: 1.0}
)

var seasonsByMonth = [12]Season{
	Winter, Winter, // Jan, Feb
	Spring, Spring, Spring,
	Summer, Summer, Summer,
	Fall, Fall, Fall,
	Winter, // Dec
}

// NormalizeMonth wraps any integer onto 1..12.
func NormalizeMonth(month int) int {
	return ((month-1)%12+12)%12 + 1
}

// SeasonFor maps a calendar month to its season and impact factor.
func SeasonFor(month int) Season {
	return seasonsByMonth[NormalizeMonth(month)-1]
}

// SeasonFactor returns the consumption factor for a month.
func SeasonFactor(month int) float64 {
	return SeasonFor(month).Factor
}
