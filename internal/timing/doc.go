// Package timing reconciles noisy provider lyric timing into a clean,
// monotonic, duration-bounded line timeline.
//
// The pipeline composes five stages, each a pure function over immutable
// slices: source selection between word-derived and line-derived candidates,
// unit-scale inference for ambiguous timestamps, detection and expansion of
// degenerate relative timing (optionally guided by an energy envelope),
// repair of lines missing from the timeline via fuzzy matching against a
// reference lyric text, and a final normalization pass enforcing ordering
// and bounds invariants.
//
// No stage returns an error: malformed numeric input degrades to an absent
// state handled by fallback estimation, and a fully unusable input sequence
// yields an empty output sequence. Identical inputs always produce identical
// outputs.
package timing
