package analysis

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrEmpty is returned when a column has no observations to describe.
var ErrEmpty = errors.New("no observations")

// Summary holds the descriptive statistics of one column.
type Summary struct {
	Count  int
	Mean   float64
	Median float64
	Std    float64 // sample standard deviation (n-1); NaN for a single observation
	Min    float64
	Max    float64
}

// Describe computes count, mean, median, standard deviation, min and max.
// NaN values are ignored, matching how missing cells are treated when loading.
func Describe(values []float64) (Summary, error) {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return Summary{}, ErrEmpty
	}
	sort.Float64s(clean)

	mean, std := stat.MeanStdDev(clean, nil)
	return Summary{
		Count:  len(clean),
		Mean:   mean,
		Median: Percentile(clean, 0.5),
		Std:    std,
		Min:    clean[0],
		Max:    clean[len(clean)-1],
	}, nil
}

// Percentile returns the p-th quantile of sorted data, linearly interpolating
// between the two closest ranks. p is in [0, 1].
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	// Exact rank: avoid 0*Inf when the next value is infinite.
	if h == lo {
		return sorted[i]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
