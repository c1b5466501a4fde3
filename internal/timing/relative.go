package timing

import "math"

const (
	// relativeMaxEndCap bounds how far a relative sequence's maximum end may
	// reach in absolute seconds before detection rejects it.
	relativeMaxEndCap = 5.0
	// relativeMaxEndShare bounds the maximum end as a fraction of the
	// known duration.
	relativeMaxEndShare = 0.2
	// relativeMinDuration is the track length below which the compressed-end
	// heuristic is unreliable.
	relativeMinDuration = 10.0
	// nearZeroStart is the absolute-seconds slack within which a start
	// counts as zero.
	nearZeroStart = 0.001
	// zeroStartShare is the fraction of near-zero starts that marks a
	// sequence as degenerate.
	zeroStartShare = 0.8
	// fallbackWeight is the relative weight assumed for a line with no
	// usable duration when no observed weights exist.
	fallbackWeight = 0.5
)

// IsRelative reports whether the sequence expresses only durations or
// offsets from an implicit origin rather than absolute positions. True when
// the whole timeline is compressed into a small prefix of a long track, or
// when nearly all starts sit at zero with inconsistent or collapsed values.
func IsRelative(entries []Entry, duration float64) bool {
	if len(entries) == 0 {
		return false
	}

	if duration > relativeMinDuration {
		maxEnd := 0.0
		seen := false
		for _, entry := range entries {
			if entry.End.Valid {
				seen = true
				maxEnd = math.Max(maxEnd, entry.End.Seconds)
			}
		}
		if seen && maxEnd < math.Min(relativeMaxEndCap, relativeMaxEndShare*duration) {
			return true
		}
	}

	validStarts := 0
	zeroStarts := 0
	distinct := make(map[float64]struct{})
	for _, entry := range entries {
		if !entry.Start.Valid {
			continue
		}
		validStarts++
		if math.Abs(entry.Start.Seconds) <= nearZeroStart {
			zeroStarts++
		}
		distinct[math.Round(entry.Start.Seconds*1000)] = struct{}{}
	}
	if validStarts == 0 {
		return false
	}
	if float64(zeroStarts)/float64(validStarts) < zeroStartShare {
		return false
	}
	return ScoreCandidate(entries).MonotonicBreaks > 0 || len(distinct) < 3
}

// relativeWeights derives a per-line relative weight from each entry's
// duration (or bare end), substituting the median observed positive weight
// for missing ones.
func relativeWeights(entries []Entry) []float64 {
	weights := make([]float64, len(entries))
	observed := make([]float64, 0, len(entries))
	for i, entry := range entries {
		w := 0.0
		switch {
		case entry.Start.Valid && entry.End.Valid:
			w = entry.End.Seconds - entry.Start.Seconds
		case entry.End.Valid:
			w = entry.End.Seconds
		}
		if w > 0 {
			observed = append(observed, w)
		}
		weights[i] = w
	}
	fill := median(observed, fallbackWeight)
	if fill <= 0 {
		fill = fallbackWeight
	}
	for i, w := range weights {
		if w <= 0 {
			weights[i] = fill
		}
	}
	return weights
}

// ExpandUniform lays relative lines out back-to-back with zero gap,
// rescaling their weights so the timeline spans the known duration.
func ExpandUniform(entries []Entry, duration float64) []Entry {
	if len(entries) == 0 {
		return entries
	}
	weights := relativeWeights(entries)

	total := 0.0
	for _, w := range weights {
		total += w
	}
	scale := 1.0
	if duration > 0 && total > 0 {
		scale = duration / total
	}

	expanded := make([]Entry, len(entries))
	cursor := 0.0
	for i, entry := range entries {
		length := weights[i] * scale
		expanded[i] = Entry{
			Text:    entry.Text,
			Start:   NewTimestamp(cursor),
			End:     NewTimestamp(cursor + length),
			Section: entry.Section,
		}
		cursor += length
	}
	return expanded
}
