package timing

import (
	"math"
	"testing"
)

func TestRepairInsertsInteriorGap(t *testing.T) {
	entries := []Entry{
		{Text: "Line A", Start: ts(0), End: ts(2)},
		{Text: "Line C", Start: ts(5), End: ts(7)},
	}
	reference := "Line A\nLine B\nLine C"

	repaired, inserted := Repair(entries, reference, 0)
	if inserted != 1 {
		t.Fatalf("inserted = %d, want 1", inserted)
	}
	if len(repaired) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(repaired))
	}
	if repaired[1].Text != "Line B" {
		t.Fatalf("expected Line B inserted, got %q", repaired[1].Text)
	}

	// Line B is fitted into the [2, 5] window between A's end and C's start.
	bStart := repaired[1].Start.Seconds
	if bStart < 2 || bStart > 5 {
		t.Errorf("Line B start %v outside window [2, 5]", bStart)
	}
	prev := math.Inf(-1)
	for i, entry := range repaired {
		if entry.Start.Seconds < prev {
			t.Errorf("starts must be non-decreasing, entry %d: %+v", i, entry)
		}
		prev = entry.Start.Seconds
	}
	// Re-expansion chains each end to the next start.
	if repaired[0].End.Seconds != repaired[1].Start.Seconds {
		t.Errorf("Line A end %v should meet Line B start %v", repaired[0].End.Seconds, repaired[1].Start.Seconds)
	}
	if repaired[1].End.Seconds != repaired[2].Start.Seconds {
		t.Errorf("Line B end %v should meet Line C start %v", repaired[1].End.Seconds, repaired[2].Start.Seconds)
	}
}

func TestRepairNoOpWhenAllLinesMatch(t *testing.T) {
	entries := []Entry{
		{Text: "Alpha", Start: ts(0), End: ts(2)},
		{Text: "Beta", Start: ts(2), End: ts(4)},
		{Text: "Gamma", Start: ts(4), End: ts(6)},
	}

	repaired, inserted := Repair(entries, "Alpha\nBeta\nGamma", 60)
	if inserted != 0 {
		t.Fatalf("inserted = %d, want 0", inserted)
	}
	for i := range entries {
		if repaired[i] != entries[i] {
			t.Fatalf("entry %d changed: got %+v want %+v", i, repaired[i], entries[i])
		}
	}
}

func TestRepairNoOpWithoutFoothold(t *testing.T) {
	entries := []Entry{
		{Text: "completely different", Start: ts(1), End: ts(3)},
	}

	repaired, inserted := Repair(entries, "unrelated reference\nanother line", 60)
	if inserted != 0 {
		t.Fatalf("inserted = %d, want 0", inserted)
	}
	if len(repaired) != 1 || repaired[0] != entries[0] {
		t.Fatalf("input should be returned untouched: %+v", repaired)
	}
}

func TestRepairLeadingGap(t *testing.T) {
	entries := []Entry{
		{Text: "Third line here", Start: ts(10), End: ts(13)},
		{Text: "Fourth line here", Start: ts(13), End: ts(16)},
	}
	reference := "First line\nSecond line\nThird line here\nFourth line here"

	repaired, inserted := Repair(entries, reference, 60)
	if inserted != 2 {
		t.Fatalf("inserted = %d, want 2", inserted)
	}
	if repaired[0].Text != "First line" || repaired[1].Text != "Second line" {
		t.Fatalf("unexpected order: %q, %q", repaired[0].Text, repaired[1].Text)
	}
	// Both synthesized lines fit a lead window ending at the first matched
	// line's start.
	for i := 0; i < 2; i++ {
		if repaired[i].Start.Seconds > 10 {
			t.Errorf("synthesized line %d starts after the lead window: %v", i, repaired[i].Start.Seconds)
		}
		if repaired[i].Start.Seconds < 10-1.8-1e-9 {
			t.Errorf("synthesized line %d starts before the lead window: %v", i, repaired[i].Start.Seconds)
		}
	}
}

func TestRepairFuzzyMatchingTolerance(t *testing.T) {
	// Provider text differs from the reference in punctuation, case, and a
	// containment relationship; matching still lines everything up.
	entries := []Entry{
		{Text: "HELLO, world!!", Start: ts(0), End: ts(2)},
		{Text: "the second", Start: ts(4), End: ts(6)},
	}
	reference := "hello world\nmissing middle line\nthe second line of it"

	repaired, inserted := Repair(entries, reference, 0)
	if inserted != 1 {
		t.Fatalf("inserted = %d, want 1", inserted)
	}
	if repaired[1].Text != "missing middle line" {
		t.Fatalf("expected missing line inserted, got %q", repaired[1].Text)
	}
}

func TestRepairStructuralMarkerDuration(t *testing.T) {
	entries := []Entry{
		{Text: "Opening words sung here", Start: ts(10), End: ts(14)},
		{Text: "Closing words sung here", Start: ts(30), End: ts(34)},
	}
	reference := "Opening words sung here\n[Chorus]\nClosing words sung here"

	repaired, inserted := Repair(entries, reference, 60)
	if inserted != 1 {
		t.Fatalf("inserted = %d, want 1", inserted)
	}
	marker := repaired[1]
	if !marker.Section {
		t.Error("synthesized bracket line should be flagged structural")
	}
	// Markers get a short fixed duration, so the start sits just before the
	// window end at 30.
	if marker.Start.Seconds < 29 || marker.Start.Seconds > 30 {
		t.Errorf("marker start = %v, want just before 30", marker.Start.Seconds)
	}
}

func TestRepairCollapsesDegenerateWindow(t *testing.T) {
	entries := []Entry{
		{Text: "First sung line", Start: ts(5), End: ts(5.1)},
		{Text: "Second sung line", Start: ts(5.15), End: ts(8)},
	}
	reference := "First sung line\nSqueezed one\nSqueezed two\nSecond sung line"

	repaired, inserted := Repair(entries, reference, 60)
	if inserted != 2 {
		t.Fatalf("inserted = %d, want 2", inserted)
	}
	// Window [5.1, 5.15] is below the shrink floor: both lines collapse to a
	// single instant just before the window end.
	if repaired[1].Start.Seconds != repaired[2].Start.Seconds {
		t.Errorf("collapsed lines should share a start: %v vs %v",
			repaired[1].Start.Seconds, repaired[2].Start.Seconds)
	}
	if repaired[1].Start.Seconds >= 5.15 {
		t.Errorf("collapsed start %v should precede the window end", repaired[1].Start.Seconds)
	}
}

func TestRepairSkipsUnresolvedTimeline(t *testing.T) {
	entries := []Entry{
		{Text: "Alpha", Start: ts(0), End: ts(2)},
		{Text: "Beta"}, // unresolved start, nothing to anchor against
	}

	_, inserted := Repair(entries, "Alpha\nMissing\nBeta", 60)
	if inserted != 0 {
		t.Fatalf("inserted = %d, want 0", inserted)
	}
}

func TestRepairEmptyInputs(t *testing.T) {
	if _, inserted := Repair(nil, "some reference", 10); inserted != 0 {
		t.Error("nil entries should be a no-op")
	}
	entries := []Entry{{Text: "a", Start: ts(0), End: ts(1)}}
	if _, inserted := Repair(entries, "", 10); inserted != 0 {
		t.Error("empty reference should be a no-op")
	}
}
