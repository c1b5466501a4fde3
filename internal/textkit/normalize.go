package textkit

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLyric reduces a lyric line to a canonical comparable form:
// NFKC-folded, lowercased, with all whitespace, punctuation, and symbol
// runes removed. Covers both Latin punctuation and CJK fullwidth forms.
func NormalizeLyric(text string) string {
	if text == "" {
		return ""
	}
	folded := norm.NFKC.String(text)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsControl(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// LyricUnitCount returns the number of normalized runes in a lyric line.
// Used as a text-length proxy when estimating how long a line takes to sing.
func LyricUnitCount(text string) int {
	normalized := NormalizeLyric(text)
	count := 0
	for range normalized {
		count++
	}
	return count
}

// markerPairs lists opening/closing bracket pairs that denote structural
// section markers rather than sung lyrics.
var markerPairs = [][2]string{
	{"[", "]"},
	{"(", ")"},
	{"{", "}"},
	{"【", "】"},
	{"（", "）"},
	{"「", "」"},
	{"《", "》"},
}

// IsStructuralMarker reports whether a line is fully wrapped in bracket or
// parenthesis markers, e.g. "[Chorus]" or "（間奏）". Such lines annotate song
// structure and get fixed short durations during repair.
func IsStructuralMarker(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	for _, pair := range markerPairs {
		if strings.HasPrefix(trimmed, pair[0]) && strings.HasSuffix(trimmed, pair[1]) {
			inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, pair[0]), pair[1])
			if !strings.Contains(inner, pair[0]) && !strings.Contains(inner, pair[1]) {
				return true
			}
		}
	}
	return false
}
