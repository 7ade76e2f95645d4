package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateKwh(t *testing.T) {
	assert.Equal(t, 800.0, EstimateKwh(96))
	assert.Equal(t, "800.00", EstimateKwhString(96))
	assert.Equal(t, 0.0, EstimateKwh(0))
	assert.Equal(t, "1029.17", EstimateKwhString(123.5))
}

func TestSeasonForCoversEveryMonth(t *testing.T) {
	expected := map[int]string{
		1: "Winter", 2: "Winter", 12: "Winter",
		3: "Spring", 4: "Spring", 5: "Spring",
		6: "Summer", 7: "Summer", 8: "Summer",
		9: "Fall", 10: "Fall", 11: "Fall",
	}

	counts := map[string]int{}
	for month := 1; month <= 12; month++ {
		s := SeasonFor(month)
		assert.Equal(t, expected[month], s.Name, "month %d", month)
		counts[s.Name]++
	}
	assert.Equal(t, map[string]int{"Winter": 3, "Spring": 3, "Summer": 3, "Fall": 3}, counts)
}

func TestSeasonFactors(t *testing.T) {
	assert.Equal(t, 1.4, SeasonFactor(1))
	assert.Equal(t, 1.4, SeasonFactor(2))
	assert.Equal(t, 1.4, SeasonFactor(12))
	assert.Equal(t, 0.9, SeasonFactor(4))
	assert.Equal(t, 1.3, SeasonFactor(7))
	assert.Equal(t, 1.0, SeasonFactor(10))
}

func TestNormalizeMonth(t *testing.T) {
	assert.Equal(t, 1, NormalizeMonth(13))
	assert.Equal(t, 12, NormalizeMonth(0))
	assert.Equal(t, 11, NormalizeMonth(-1))
	assert.Equal(t, Winter, SeasonFor(24))
}
