package eligibility

import (
	"slices"
)

// MeanOf is the arithmetic mean of the non-nil values. It is false when there are none.
func MeanOf(values []*float64) (float64, bool) {
	present := compact(values)
	if len(present) == 0 {
		return 0, false
	}

	sum := 0.0
	for _, v := range present {
		sum += v
	}
	return sum / float64(len(present)), true
}

// MedianOf is the median of the non-nil values: the middle value, or the mean of the
// two middle values for an even count. It is false when there are none.
func MedianOf(values []*float64) (float64, bool) {
	present := compact(values)
	if len(present) == 0 {
		return 0, false
	}

	slices.Sort(present)
	mid := len(present) / 2
	if len(present)%2 == 1 {
		return present[mid], true
	}
	return (present[mid-1] + present[mid]) / 2, true
}

func compact(values []*float64) []float64 {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			present = append(present, *v)
		}
	}
	return present
}
