// Package stats has the small descriptive statistics used for map legends.
package stats

import (
	"math"
	"sort"
)

// Mean calculates the arithmetic mean, 0 for no values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Quantile calculates the q-th quantile (0 <= q <= 1) with linear interpolation
func Quantile(values []float64, q float64) float64 {
	return quantileSorted(sorted(values), q)
}

// Quartiles returns the 25th, 50th and 75th percentiles
func Quartiles(values []float64) [3]float64 {
	s := sorted(values)
	return [3]float64{
		quantileSorted(s, 0.25),
		quantileSorted(s, 0.5),
		quantileSorted(s, 0.75),
	}
}

func sorted(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

func quantileSorted(s []float64, q float64) float64 {
	if len(s) == 0 {
		return 0
	}
	q = math.Max(0, math.Min(1, q))

	index := q * float64(len(s)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return s[lower]
	}

	weight := index - float64(lower)
	return s[lower]*(1-weight) + s[upper]*weight
}
