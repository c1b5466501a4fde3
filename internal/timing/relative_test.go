package timing

import (
	"math"
	"testing"
)

func TestIsRelative(t *testing.T) {
	tests := []struct {
		name     string
		entries  []Entry
		duration float64
		want     bool
	}{
		{"empty", nil, 200, false},
		{
			"durations compressed into prefix of long track",
			[]Entry{
				{Start: ts(0), End: ts(2.1)},
				{Start: ts(0), End: ts(3.4)},
				{Start: ts(0), End: ts(1.8)},
			},
			200, true,
		},
		{
			"compressed prefix needs long track",
			[]Entry{
				{Start: ts(0), End: ts(0.5)},
				{Start: ts(0), End: ts(1.0)},
			},
			8, true, // falls through to the zero-start heuristic
		},
		{
			"mostly zero starts with collapsed values",
			[]Entry{
				{Start: ts(0), End: ts(4)},
				{Start: ts(0), End: ts(3)},
				{Start: ts(0), End: ts(5)},
			},
			0, true,
		},
		{
			"absolute timeline",
			[]Entry{
				{Start: ts(12.0), End: ts(15.2)},
				{Start: ts(15.2), End: ts(19.7)},
				{Start: ts(20.1), End: ts(24.0)},
			},
			200, false,
		},
		{
			"zero starts but spread values not degenerate",
			[]Entry{
				{Start: ts(0), End: ts(30)},
				{Start: ts(31), End: ts(60)},
				{Start: ts(61), End: ts(90)},
				{Start: ts(91), End: ts(120)},
				{Start: ts(121), End: ts(150)},
			},
			160, false,
		},
		{"no valid starts", []Entry{{Text: "a"}, {Text: "b"}}, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRelative(tt.entries, tt.duration); got != tt.want {
				t.Errorf("IsRelative() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandUniformRescalesToDuration(t *testing.T) {
	entries := []Entry{
		{Text: "a", Start: ts(0), End: ts(2)},
		{Text: "b", Start: ts(0), End: ts(6)},
		{Text: "c", Start: ts(0), End: ts(2)},
	}

	expanded := ExpandUniform(entries, 100)
	if len(expanded) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(expanded))
	}
	wantStarts := []float64{0, 20, 80}
	wantEnds := []float64{20, 80, 100}
	for i, entry := range expanded {
		if math.Abs(entry.Start.Seconds-wantStarts[i]) > 1e-9 {
			t.Errorf("entry %d start = %v, want %v", i, entry.Start.Seconds, wantStarts[i])
		}
		if math.Abs(entry.End.Seconds-wantEnds[i]) > 1e-9 {
			t.Errorf("entry %d end = %v, want %v", i, entry.End.Seconds, wantEnds[i])
		}
	}
}

func TestExpandUniformFillsMissingWeightsWithMedian(t *testing.T) {
	entries := []Entry{
		{Text: "a", Start: ts(0), End: ts(2)},
		{Text: "b"}, // no timing at all
		{Text: "c", Start: ts(0), End: ts(4)},
	}

	expanded := ExpandUniform(entries, 9)
	// Weights 2, 3 (median of 2 and 4), 4 rescale to sum 9.
	if got := expanded[1].End.Seconds - expanded[1].Start.Seconds; math.Abs(got-3) > 1e-9 {
		t.Errorf("median-filled line length = %v, want 3", got)
	}
	if got := expanded[2].End.Seconds; math.Abs(got-9) > 1e-9 {
		t.Errorf("timeline should span the duration, last end = %v", got)
	}
}

func TestExpandUniformWithoutDurationKeepsWeights(t *testing.T) {
	entries := []Entry{
		{Text: "a", Start: ts(0), End: ts(1.5)},
		{Text: "b", Start: ts(0), End: ts(2.5)},
	}

	expanded := ExpandUniform(entries, 0)
	if got := expanded[1].End.Seconds; math.Abs(got-4) > 1e-9 {
		t.Errorf("unscaled layout should end at 4, got %v", got)
	}
}

func TestExpandUniformAllMissingUsesFallbackWeight(t *testing.T) {
	entries := []Entry{{Text: "a"}, {Text: "b"}}

	expanded := ExpandUniform(entries, 0)
	if got := expanded[0].End.Seconds; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("fallback weight should be 0.5s, got %v", got)
	}
	if got := expanded[1].Start.Seconds; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("lines should be back-to-back, second start = %v", got)
	}
}
