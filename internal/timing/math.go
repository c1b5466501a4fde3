package timing

import "sort"

// median returns the middle value of the samples, averaging the two central
// values for even counts. Returns fallback for an empty slice.
func median(samples []float64, fallback float64) float64 {
	if len(samples) == 0 {
		return fallback
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// percentile linearly interpolates the p-th percentile (p in [0,1]) of the
// samples. Returns 0 for an empty slice.
func percentile(samples []float64, p float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	position := p * float64(len(sorted)-1)
	lower := int(position)
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	fraction := position - float64(lower)
	return sorted[lower] + fraction*(sorted[lower+1]-sorted[lower])
}

// clamp bounds v into [low, high].
func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
