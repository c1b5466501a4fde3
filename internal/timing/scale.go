package timing

import "math"

// scaleCandidates are the unit multipliers considered when timestamps could
// be in deciseconds, centiseconds, milliseconds, or coarser units.
var scaleCandidates = []float64{1, 0.1, 0.01, 0.001, 10, 100}

// millisecondCutoff is the raw maximum above which timestamps are assumed
// millisecond-scale when no duration is known.
const millisecondCutoff = 1000

// InferScale determines the unit multiplier of the candidate's timestamps.
// With a known duration it picks the multiplier minimizing the relative
// deviation of the scaled maximum from the duration, accepted only within
// the tolerance; otherwise large raw maxima are assumed milliseconds.
func InferScale(entries []Entry, duration float64, p Params) float64 {
	maxValue := 0.0
	seen := false
	for _, entry := range entries {
		if entry.Start.Valid {
			seen = true
			maxValue = math.Max(maxValue, entry.Start.Seconds)
		}
		if entry.End.Valid {
			seen = true
			maxValue = math.Max(maxValue, entry.End.Seconds)
		}
	}
	if !seen || maxValue <= 0 {
		return 1
	}

	if duration > 0 {
		best := 1.0
		bestDeviation := math.Inf(1)
		for _, candidate := range scaleCandidates {
			deviation := math.Abs(maxValue*candidate-duration) / duration
			if deviation < bestDeviation {
				bestDeviation = deviation
				best = candidate
			}
		}
		if bestDeviation <= p.ScaleTolerance {
			return best
		}
		return 1
	}

	if maxValue > millisecondCutoff {
		return 0.001
	}
	return 1
}
