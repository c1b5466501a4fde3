package timing

// monotonicTolerance is the slack in seconds below which an adjacent-start
// inversion is not counted as a break.
const monotonicTolerance = 0.001

// Source identifies which timing candidate the selector chose.
type Source string

const (
	// SourceTokens means timing was aggregated from nested word tokens.
	SourceTokens Source = "tokens"
	// SourceLines means timing came from the lines' own direct fields.
	SourceLines Source = "lines"
)

// TokenCandidate aggregates nested token bounds into per-line timing:
// start is the minimum token start, end the maximum token end.
func TokenCandidate(lines []RawLine) []Entry {
	entries := make([]Entry, len(lines))
	for i, line := range lines {
		entry := Entry{Text: line.Text, Section: line.Section}
		for _, token := range line.Tokens {
			if token.Start.Valid && (!entry.Start.Valid || token.Start.Seconds < entry.Start.Seconds) {
				entry.Start = token.Start
			}
			if token.End.Valid && (!entry.End.Valid || token.End.Seconds > entry.End.Seconds) {
				entry.End = token.End
			}
		}
		entries[i] = entry
	}
	return entries
}

// LineCandidate lifts each line's direct start/end fields into entries.
func LineCandidate(lines []RawLine) []Entry {
	entries := make([]Entry, len(lines))
	for i, line := range lines {
		entries[i] = Entry{Text: line.Text, Start: line.Start, End: line.End, Section: line.Section}
	}
	return entries
}

// ScoreCandidate computes diagnostics for a candidate sequence: the number
// of entries with both bounds finite and the number of adjacent-start
// inversions beyond the monotonic tolerance.
func ScoreCandidate(entries []Entry) Score {
	var score Score
	lastStart := Timestamp{}
	for _, entry := range entries {
		if entry.Start.Valid && entry.End.Valid {
			score.ValidCount++
		}
		if entry.Start.Valid {
			if lastStart.Valid && entry.Start.Seconds < lastStart.Seconds-monotonicTolerance {
				score.MonotonicBreaks++
			}
			lastStart = entry.Start
		}
	}
	return score
}

// SelectSource chooses between the token-derived and line-derived candidate.
// Token timing is finer-grained when present but may be wholly absent per
// line; line timing is the fallback signal.
func SelectSource(tokens, lines []Entry, p Params) ([]Entry, Source, Score) {
	tokenScore := ScoreCandidate(tokens)
	lineScore := ScoreCandidate(lines)

	total := len(tokens)
	tokenGood := looksGood(tokenScore, total, p)
	lineGood := looksGood(lineScore, total, p)

	switch {
	case tokenGood && tokenScore.MonotonicBreaks <= lineScore.MonotonicBreaks:
		return tokens, SourceTokens, tokenScore
	case lineGood || validRatio(lineScore, total) >= validRatio(tokenScore, total):
		return lines, SourceLines, lineScore
	default:
		return tokens, SourceTokens, tokenScore
	}
}

func looksGood(score Score, total int, p Params) bool {
	return validRatio(score, total) >= p.ValidRatio && score.MonotonicBreaks <= p.MaxMonotonicBreaks
}

func validRatio(score Score, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(score.ValidCount) / float64(total)
}
