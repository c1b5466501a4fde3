package timing

import (
	"strings"

	"lyrasync/internal/textkit"
)

const (
	// structuralDuration is the fixed length assumed for section markers.
	structuralDuration = 0.35
	// secondsPerUnitMin/Max bound the per-character pacing estimate.
	secondsPerUnitMin = 0.08
	secondsPerUnitMax = 0.45
	// secondsPerUnitDefault applies when no resolved line provides a sample.
	secondsPerUnitDefault = 0.22
	// synthesizedMin/Max bound an estimated line duration before fitting.
	synthesizedMin = 0.7
	synthesizedMax = 5.0
	// shrinkFloor is the smallest duration proportional shrinking may reach.
	shrinkFloor = 0.18
	// leadWindowMin and leadWindowPerLine size the synthetic window for
	// lines missing before the first matched one.
	leadWindowMin     = 1.2
	leadWindowPerLine = 0.9
	// instantOffset places collapsed lines just before a window's end.
	instantOffset = 0.001
)

// Repair detects reference lines missing from the resolved timeline and
// synthesizes timing for them. It is strictly additive: when no foothold is
// found in the reference text, or nothing is missing, the input is returned
// untouched with an inserted count of zero.
func Repair(entries []Entry, reference string, duration float64) ([]Entry, int) {
	refLines := splitReference(reference)
	if len(entries) == 0 || len(refLines) == 0 {
		return entries, 0
	}
	for _, entry := range entries {
		if !entry.Start.Valid {
			// Repair anchors gap windows on resolved starts; an unresolved
			// timeline has no footholds to anchor against.
			return entries, 0
		}
	}

	matches := matchReference(entries, refLines)

	pacing := secondsPerUnit(entries)

	type pending struct {
		text  string
		start float64
	}
	rebuilt := make([]pending, 0, len(entries)+len(refLines))
	inserted := 0

	prevEntry := -1
	prevRef := -1
	for i, entry := range entries {
		ref := matches[i]
		if ref >= 0 {
			var missing []string
			var windowStart, windowEnd float64
			if prevEntry < 0 && ref > 0 {
				// Leading gap: everything before the first matched line.
				missing = refLines[:ref]
				windowEnd = entry.Start.Seconds
				size := leadWindowMin
				if per := leadWindowPerLine * float64(len(missing)); per > size {
					size = per
				}
				windowStart = windowEnd - size
				if windowStart < 0 {
					windowStart = 0
				}
			} else if prevEntry >= 0 && ref-prevRef > 1 {
				// Interior gap: reference lines strictly between two matches.
				missing = refLines[prevRef+1 : ref]
				windowStart = entries[prevEntry].Start.Seconds
				if end := entries[prevEntry].End; end.Valid && end.Seconds > windowStart {
					windowStart = end.Seconds
				}
				windowEnd = entry.Start.Seconds
			}
			if len(missing) > 0 {
				starts := fitWindow(missing, pacing, windowStart, windowEnd)
				for j, text := range missing {
					rebuilt = append(rebuilt, pending{text: text, start: starts[j]})
				}
				inserted += len(missing)
			}
			prevEntry = i
			prevRef = ref
		}
		rebuilt = append(rebuilt, pending{text: entry.Text, start: entry.Start.Seconds})
	}

	if inserted == 0 {
		return entries, 0
	}

	// Re-expand the start-only sequence into start/end pairs: each line ends
	// where the next begins, the last after the median adjacent gap.
	gaps := make([]float64, 0, len(rebuilt))
	for i := 1; i < len(rebuilt); i++ {
		if gap := rebuilt[i].start - rebuilt[i-1].start; gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	tailGap := median(gaps, 2.5)

	result := make([]Entry, len(rebuilt))
	for i, line := range rebuilt {
		start := line.start
		end := start + tailGap
		if i+1 < len(rebuilt) {
			end = rebuilt[i+1].start
		}
		if duration > 0 {
			start = clamp(start, 0, duration)
			end = clamp(end, 0, duration)
		}
		result[i] = Entry{
			Text:    line.text,
			Start:   NewTimestamp(start),
			End:     NewTimestamp(end),
			Section: textkit.IsStructuralMarker(line.text),
		}
	}
	return result, inserted
}

// splitReference breaks the reference text into trimmed non-empty lines.
func splitReference(reference string) []string {
	if strings.TrimSpace(reference) == "" {
		return nil
	}
	raw := strings.Split(reference, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// matchReference walks resolved entries in order, greedily consuming
// reference lines: for each entry, the first unconsumed reference line that
// equals, contains, or is contained by its normalized text is matched. The
// returned slice holds the matched reference index per entry, -1 for none.
func matchReference(entries []Entry, refLines []string) []int {
	normalizedRefs := make([]string, len(refLines))
	for i, line := range refLines {
		normalizedRefs[i] = textkit.NormalizeLyric(line)
	}

	matches := make([]int, len(entries))
	cursor := 0
	for i, entry := range entries {
		matches[i] = -1
		normalized := textkit.NormalizeLyric(entry.Text)
		if normalized == "" {
			continue
		}
		for j := cursor; j < len(normalizedRefs); j++ {
			ref := normalizedRefs[j]
			if ref == "" {
				continue
			}
			if ref == normalized || strings.Contains(ref, normalized) || strings.Contains(normalized, ref) {
				matches[i] = j
				cursor = j + 1
				break
			}
		}
	}
	return matches
}

// secondsPerUnit estimates singing pace as the median duration per lyric
// unit across resolved non-structural lines.
func secondsPerUnit(entries []Entry) float64 {
	samples := make([]float64, 0, len(entries))
	for _, entry := range entries {
		if entry.Section || textkit.IsStructuralMarker(entry.Text) {
			continue
		}
		if !entry.Start.Valid || !entry.End.Valid {
			continue
		}
		lineDuration := entry.End.Seconds - entry.Start.Seconds
		units := textkit.LyricUnitCount(entry.Text)
		if lineDuration > 0.1 && units > 0 {
			samples = append(samples, lineDuration/float64(units))
		}
	}
	return clamp(median(samples, secondsPerUnitDefault), secondsPerUnitMin, secondsPerUnitMax)
}

// estimateDuration predicts how long a missing line takes to sing.
func estimateDuration(text string, pacing float64) float64 {
	if textkit.IsStructuralMarker(text) {
		return structuralDuration
	}
	units := textkit.LyricUnitCount(text)
	return clamp(float64(units)*pacing, synthesizedMin, synthesizedMax)
}

// fitWindow lays the missing lines out back-to-back so they end at the
// window's end, shrinking durations proportionally when the window is too
// small and collapsing to a single instant when it is degenerate.
func fitWindow(missing []string, pacing float64, windowStart, windowEnd float64) []float64 {
	starts := make([]float64, len(missing))
	available := windowEnd - windowStart

	if available <= shrinkFloor {
		instant := windowEnd - instantOffset
		if instant < windowStart {
			instant = windowStart
		}
		for i := range starts {
			starts[i] = instant
		}
		return starts
	}

	durations := make([]float64, len(missing))
	total := 0.0
	for i, text := range missing {
		durations[i] = estimateDuration(text, pacing)
		total += durations[i]
	}
	if total > available {
		factor := available / total
		total = 0
		for i, d := range durations {
			durations[i] = d * factor
			if durations[i] < shrinkFloor {
				durations[i] = shrinkFloor
			}
			total += durations[i]
		}
	}

	cursor := windowEnd - total
	if cursor < windowStart {
		cursor = windowStart
	}
	for i, d := range durations {
		starts[i] = cursor
		cursor += d
	}
	return starts
}
