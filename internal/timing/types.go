package timing

import "math"

// MinLineDuration is the smallest committed line duration in seconds.
const MinLineDuration = 0.02

// Timestamp is an optional seconds value. Provider payloads routinely omit
// or corrupt timing fields, so absence is modeled explicitly rather than as
// a zero value.
type Timestamp struct {
	Seconds float64
	Valid   bool
}

// NewTimestamp wraps a raw numeric value, marking non-finite input invalid.
func NewTimestamp(seconds float64) Timestamp {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return Timestamp{}
	}
	return Timestamp{Seconds: seconds, Valid: true}
}

// RawToken is an atomic word-level unit with optional timing.
type RawToken struct {
	Text  string
	Start Timestamp
	End   Timestamp
}

// RawLine is a lyric line as delivered by the provider.
type RawLine struct {
	Text    string
	Start   Timestamp
	End     Timestamp
	Tokens  []RawToken
	Section bool
}

// Entry is an intermediate line with candidate timing flowing between
// pipeline stages.
type Entry struct {
	Text    string
	Start   Timestamp
	End     Timestamp
	Section bool
}

// LineTiming is a fully resolved line, the only type crossing the output
// boundary. End >= Start + MinLineDuration holds for every committed line,
// starts are non-decreasing across a committed sequence, and both bounds lie
// in [0, duration] when the duration is known.
type LineTiming struct {
	Text  string  `json:"text"`
	Start float64 `json:"start_s"`
	End   float64 `json:"end_s"`
}

// Score is a diagnostic metric over a candidate timing sequence.
type Score struct {
	ValidCount      int
	MonotonicBreaks int
}

// Context carries the external inputs available to a reconciliation run.
// A zero Duration means unknown; invalid hints are normalized to zero by
// the provider layer.
type Context struct {
	// Duration is the total track length in seconds, 0 when unknown.
	Duration float64
	// Envelope is an ordered sequence of non-negative energy samples
	// uniformly spanning the duration. Nil when unavailable.
	Envelope []float64
	// Reference is the newline-delimited original lyric text, empty when
	// unavailable. Used only for repair.
	Reference string
}

// HasDuration reports whether a usable duration hint is present.
func (c Context) HasDuration() bool {
	return c.Duration > 0 && !math.IsNaN(c.Duration) && !math.IsInf(c.Duration, 0)
}
