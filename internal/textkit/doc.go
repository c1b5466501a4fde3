// Package textkit provides text processing utilities for lyric comparison,
// length estimation, and filename sanitization.
//
// The primary use cases are:
//   - Normalizing lyric lines into a canonical comparable form
//   - Counting lyric units (normalized rune length) for duration estimation
//   - Detecting structural section markers like "[Chorus]"
//   - Sanitizing track titles for safe filesystem use
//
// Normalization applies NFKC folding, lowercases, and strips whitespace,
// punctuation, and symbols across both Latin and CJK ranges so that provider
// text and reference text compare equal despite formatting drift.
package textkit
