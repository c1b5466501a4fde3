package store_test

import (
	"context"
	"testing"

	"lyrasync/internal/store"
	"lyrasync/internal/testsupport"
	"lyrasync/internal/timing"
)

func sampleTimeline() []timing.LineTiming {
	return []timing.LineTiming{
		{Text: "First line", Start: 0, End: 2.5},
		{Text: "Second line", Start: 2.5, End: 6},
	}
}

func TestSaveLookupRoundTrip(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if err := st.Save(ctx, "track-1", "Night Drive", sampleTimeline()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	track, err := st.Lookup(ctx, "track-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if track == nil {
		t.Fatal("expected cached track")
	}
	if track.Title != "Night Drive" || len(track.Lines) != 2 {
		t.Fatalf("track = %+v", track)
	}
	if track.Lines[1].Start != 2.5 || track.Lines[1].End != 6 {
		t.Fatalf("lines = %+v", track.Lines)
	}
	if track.SavedAt.IsZero() {
		t.Error("SavedAt not recorded")
	}
}

func TestLookupMissingReturnsNil(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	track, err := st.Lookup(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if track != nil {
		t.Fatalf("expected nil, got %+v", track)
	}
}

func TestSaveIsIdempotentUpsert(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if err := st.Save(ctx, "track-1", "Old Title", sampleTimeline()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	replacement := []timing.LineTiming{{Text: "Only line", Start: 1, End: 4}}
	if err := st.Save(ctx, "track-1", "New Title", replacement); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	count, err := st.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Count = %d, want 1", count)
	}

	track, err := st.Lookup(ctx, "track-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if track.Title != "New Title" || len(track.Lines) != 1 {
		t.Fatalf("track = %+v", track)
	}
}

func TestSaveRejectsEmptyTrackID(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	if err := st.Save(context.Background(), "  ", "", sampleTimeline()); err == nil {
		t.Fatal("expected error for empty track ID")
	}
}

func TestInvalidate(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if err := st.Save(ctx, "track-1", "", sampleTimeline()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	removed, err := st.Invalidate(ctx, "track-1")
	if err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if !removed {
		t.Fatal("expected removal")
	}

	removed, err = st.Invalidate(ctx, "track-1")
	if err != nil {
		t.Fatalf("Invalidate again: %v", err)
	}
	if removed {
		t.Fatal("second invalidation should report nothing removed")
	}

	track, err := st.Lookup(ctx, "track-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if track != nil {
		t.Fatalf("expected nil after invalidation, got %+v", track)
	}
}

func TestPruneKeepsMostRecent(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d"} {
		if err := st.Save(ctx, id, "", sampleTimeline()); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	removed, err := st.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	tracks, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].TrackID != "d" || tracks[1].TrackID != "c" {
		t.Fatalf("kept wrong tracks: %s, %s", tracks[0].TrackID, tracks[1].TrackID)
	}
}

func TestListNewestFirst(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	for _, id := range []string{"first", "second", "third"} {
		if err := st.Save(ctx, id, "", sampleTimeline()); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	tracks, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := make([]string, len(tracks))
	for i, track := range tracks {
		got[i] = track.TrackID
	}
	want := []string{"third", "second", "first"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestOpenTwiceSharesData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := first.Save(ctx, "track-1", "", sampleTimeline()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := store.Open(cfg, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	track, err := second.Lookup(ctx, "track-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if track == nil {
		t.Fatal("expected persisted track after reopen")
	}
}
