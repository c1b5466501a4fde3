package timing

import (
	"log/slog"

	"lyrasync/internal/logging"
)

// Result carries the committed timeline plus per-stage diagnostics.
type Result struct {
	Lines []LineTiming
	// Source is the timing candidate the selector chose.
	Source Source
	// Score diagnoses the chosen candidate.
	Score Score
	// Scale is the inferred unit multiplier applied during normalization.
	Scale float64
	// Relative reports whether degenerate relative timing was detected.
	Relative bool
	// EnvelopeGuided reports whether expansion used the energy envelope.
	EnvelopeGuided bool
	// Inserted counts lines synthesized by reference repair.
	Inserted int
}

// Pipeline reconciles raw provider lines into a committed timeline. It is a
// pure function of its inputs: no I/O, no retained state, and identical
// inputs always produce identical results.
type Pipeline struct {
	params Params
	logger *slog.Logger
}

// NewPipeline constructs a pipeline with the given thresholds. A nil logger
// disables logging.
func NewPipeline(params Params, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		params: params,
		logger: logging.NewComponentLogger(logger, "timing"),
	}
}

// Reconcile runs select, scale inference, relative expansion, reference
// repair, and normalization over one provider response. An empty or fully
// unusable input yields an empty timeline, never an error.
func (p *Pipeline) Reconcile(lines []RawLine, rc Context) Result {
	if len(lines) == 0 {
		return Result{Scale: 1}
	}

	tokens := TokenCandidate(lines)
	direct := LineCandidate(lines)
	selected, source, score := SelectSource(tokens, direct, p.params)
	p.logger.Debug("selected timing source",
		logging.String("source", string(source)),
		logging.Int("valid", score.ValidCount),
		logging.Int("breaks", score.MonotonicBreaks))

	duration := 0.0
	if rc.HasDuration() {
		duration = rc.Duration
	}

	scale := InferScale(selected, duration, p.params)
	if scale != 1 {
		p.logger.Debug("inferred timestamp scale", logging.Float64("multiplier", scale))
	}

	entries := selected
	relative := IsRelative(selected, duration)
	envelopeGuided := false
	if relative {
		if expanded, ok := ExpandWithEnvelope(selected, duration, rc.Envelope, p.params); ok {
			entries = expanded
			envelopeGuided = true
		} else {
			entries = ExpandUniform(selected, duration)
		}
		// Expansion produces absolute seconds fitted to the duration, so the
		// inferred multiplier no longer applies.
		scale = 1
		p.logger.Debug("expanded relative timing", logging.Bool("envelope_guided", envelopeGuided))
	}

	entries, inserted := Repair(entries, rc.Reference, duration)
	if inserted > 0 {
		p.logger.Debug("repaired missing lines", logging.Int("inserted", inserted))
	}

	return Result{
		Lines:          Normalize(entries, scale, duration),
		Source:         source,
		Score:          score,
		Scale:          scale,
		Relative:       relative,
		EnvelopeGuided: envelopeGuided,
		Inserted:       inserted,
	}
}
