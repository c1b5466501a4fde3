package timing

import "math"

// fallbackLineDuration applies when no resolved line yields a usable
// duration sample.
const fallbackLineDuration = 2.5

// Normalize is the final pass committing a LineTiming sequence: it applies
// the inferred scale multiplier, shifts negative timelines to zero, enforces
// non-decreasing starts and the minimum line duration, bounds everything
// into [0, duration] when known, and rounds to millisecond precision.
func Normalize(entries []Entry, scale, duration float64) []LineTiming {
	if len(entries) == 0 {
		return nil
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}

	starts := make([]Timestamp, len(entries))
	ends := make([]Timestamp, len(entries))
	minStart := math.Inf(1)
	for i, entry := range entries {
		if entry.Start.Valid {
			starts[i] = NewTimestamp(entry.Start.Seconds * scale)
			minStart = math.Min(minStart, starts[i].Seconds)
		}
		if entry.End.Valid {
			ends[i] = NewTimestamp(entry.End.Seconds * scale)
		}
	}

	shift := 0.0
	if minStart < 0 && !math.IsInf(minStart, 1) {
		shift = -minStart
	}
	for i := range entries {
		if starts[i].Valid {
			starts[i].Seconds += shift
		}
		if ends[i].Valid {
			ends[i].Seconds += shift
		}
	}

	samples := make([]float64, 0, len(entries))
	for i := range entries {
		if starts[i].Valid && ends[i].Valid && ends[i].Seconds > starts[i].Seconds {
			samples = append(samples, ends[i].Seconds-starts[i].Seconds)
		}
	}
	fallback := median(samples, fallbackLineDuration)

	bounded := duration > 0 && !math.IsNaN(duration) && !math.IsInf(duration, 0)

	result := make([]LineTiming, len(entries))
	prevStart := 0.0
	for i, entry := range entries {
		start := prevStart
		if starts[i].Valid && starts[i].Seconds > prevStart {
			start = starts[i].Seconds
		}

		end := 0.0
		switch {
		case ends[i].Valid && ends[i].Seconds > start:
			end = ends[i].Seconds
		case i+1 < len(entries) && starts[i+1].Valid && starts[i+1].Seconds > start:
			end = starts[i+1].Seconds
		default:
			end = start + fallback
		}

		if bounded {
			if duration >= MinLineDuration && start > duration-MinLineDuration {
				start = duration - MinLineDuration
			}
			start = clamp(start, 0, duration)
			end = clamp(end, 0, duration)
		}
		if end < start+MinLineDuration {
			end = start + MinLineDuration
		}

		start = roundMillis(start)
		end = roundMillis(end)

		result[i] = LineTiming{Text: entry.Text, Start: start, End: end}
		prevStart = start
	}
	return result
}

func roundMillis(v float64) float64 {
	return math.Round(v*1000) / 1000
}
