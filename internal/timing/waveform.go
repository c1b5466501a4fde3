package timing

import (
	"math"
	"sort"
)

const (
	// smoothRadius is the moving-average radius applied to the envelope.
	smoothRadius = 2
	// leadInSeconds extends the detected vocal window backwards.
	leadInSeconds = 0.2
	// leadOutSeconds extends the detected vocal window forwards.
	leadOutSeconds = 0.3
	// weightFloor keeps every in-window sample reachable so boundaries
	// never collapse into dead zones.
	weightFloor = 0.005
	// minBoundaryGap is the smallest spacing between consecutive line
	// boundaries in seconds.
	minBoundaryGap = 0.02
)

// ExpandWithEnvelope distributes relative lines across the vocal-activity
// window of an energy envelope. Returns false when the envelope is too
// coarse or too flat to locate a window, in which case the caller falls
// back to uniform expansion.
func ExpandWithEnvelope(entries []Entry, duration float64, envelope []float64, p Params) ([]Entry, bool) {
	if len(entries) == 0 || duration <= 0 || len(envelope) < p.MinEnvelopeSamples {
		return nil, false
	}

	smoothed := smoothEnvelope(envelope, smoothRadius)

	positives := make([]float64, 0, len(smoothed))
	for _, sample := range smoothed {
		if sample > 0 {
			positives = append(positives, sample)
		}
	}
	if len(positives) == 0 {
		return nil, false
	}

	low := percentile(positives, p.LowPercentile)
	high := percentile(positives, p.HighPercentile)
	threshold := low + p.ActivityWeight*(high-low)
	if high <= threshold {
		return nil, false
	}

	first, last := -1, -1
	for i, sample := range smoothed {
		if sample > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil, false
	}

	secondsPerSample := duration / float64(len(envelope)-1)
	leadIn := int(math.Round(leadInSeconds / secondsPerSample))
	if leadIn < 1 {
		leadIn = 1
	}
	leadOut := int(math.Round(leadOutSeconds / secondsPerSample))

	windowStart := first - leadIn
	if windowStart < 0 {
		windowStart = 0
	}
	windowEnd := last + leadOut
	if windowEnd > len(smoothed)-1 {
		windowEnd = len(smoothed) - 1
	}
	if windowEnd <= windowStart {
		return nil, false
	}

	// Per-sample emphasis weights inside the window, each spanning one
	// sample-index interval of the cumulative curve.
	sampleCount := windowEnd - windowStart + 1
	weights := make([]float64, sampleCount)
	cumulative := make([]float64, sampleCount)
	running := 0.0
	for i := 0; i < sampleCount; i++ {
		lifted := math.Max(smoothed[windowStart+i]-threshold, 0) / (high - threshold)
		weights[i] = weightFloor + math.Pow(lifted, p.EmphasisExponent)
		running += weights[i]
		cumulative[i] = running
	}
	totalEnvelope := running

	lineWeights := relativeWeights(entries)
	totalLines := 0.0
	for _, w := range lineWeights {
		totalLines += w
	}
	if totalLines <= 0 {
		return nil, false
	}

	// One boundary per line edge, expressed as a cumulative fraction of the
	// total relative weight, located on the cumulative envelope curve.
	boundaries := make([]float64, len(entries)+1)
	prefix := 0.0
	for i := range boundaries {
		fraction := prefix / totalLines
		index := boundaryIndex(cumulative, weights, fraction*totalEnvelope)
		boundaries[i] = (float64(windowStart) + index) * secondsPerSample
		if i < len(lineWeights) {
			prefix += lineWeights[i]
		}
	}

	enforceBoundaryGaps(boundaries)

	windowStartSeconds := float64(windowStart) * secondsPerSample
	windowEndSeconds := float64(windowEnd) * secondsPerSample
	if boundaries[len(boundaries)-1] > windowEndSeconds {
		span := boundaries[len(boundaries)-1] - windowStartSeconds
		if span > 0 {
			ratio := (windowEndSeconds - windowStartSeconds) / span
			for i, b := range boundaries {
				boundaries[i] = windowStartSeconds + (b-windowStartSeconds)*ratio
			}
		}
		enforceBoundaryGaps(boundaries)
	}

	expanded := make([]Entry, len(entries))
	for i, entry := range entries {
		expanded[i] = Entry{
			Text:    entry.Text,
			Start:   NewTimestamp(boundaries[i]),
			End:     NewTimestamp(boundaries[i+1]),
			Section: entry.Section,
		}
	}
	return expanded, true
}

// smoothEnvelope applies a clipped moving average of the given radius.
func smoothEnvelope(envelope []float64, radius int) []float64 {
	smoothed := make([]float64, len(envelope))
	for i := range envelope {
		sum := 0.0
		count := 0
		for j := i - radius; j <= i+radius; j++ {
			if j < 0 || j >= len(envelope) {
				continue
			}
			sum += envelope[j]
			count++
		}
		smoothed[i] = sum / float64(count)
	}
	return smoothed
}

// boundaryIndex locates the fractional sample index (relative to the window
// start) at which the cumulative weight reaches target. Sample i's weight
// spans the index interval [i, i+1].
func boundaryIndex(cumulative, weights []float64, target float64) float64 {
	if target <= 0 {
		return 0
	}
	last := len(cumulative) - 1
	if target >= cumulative[last] {
		return float64(last + 1)
	}
	bucket := sort.SearchFloat64s(cumulative, target)
	previous := 0.0
	if bucket > 0 {
		previous = cumulative[bucket-1]
	}
	return float64(bucket) + (target-previous)/weights[bucket]
}

// enforceBoundaryGaps pushes later boundaries forward so consecutive ones
// stay at least minBoundaryGap apart.
func enforceBoundaryGaps(boundaries []float64) {
	for i := 1; i < len(boundaries); i++ {
		if boundaries[i] < boundaries[i-1]+minBoundaryGap {
			boundaries[i] = boundaries[i-1] + minBoundaryGap
		}
	}
}
