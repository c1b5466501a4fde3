package timing

// Params holds the tunable thresholds of the reconciliation pipeline.
// Defaults are empirically chosen; they have not been validated against a
// labeled timing corpus and should be tuned per provider.
type Params struct {
	// ValidRatio is the fraction of entries that must carry finite timing
	// for a candidate source to look trustworthy.
	ValidRatio float64
	// MaxMonotonicBreaks is the number of adjacent-start inversions a
	// trustworthy candidate may contain.
	MaxMonotonicBreaks int
	// ScaleTolerance is the maximum relative deviation accepted when
	// matching a unit multiplier against a known duration.
	ScaleTolerance float64
	// ActivityWeight positions the vocal-activity threshold between the
	// low and high envelope percentiles.
	ActivityWeight float64
	// LowPercentile and HighPercentile select the envelope reference
	// levels among positive samples.
	LowPercentile  float64
	HighPercentile float64
	// EmphasisExponent shapes per-sample envelope weights.
	EmphasisExponent float64
	// MinEnvelopeSamples is the envelope resolution below which
	// envelope-guided expansion is not attempted.
	MinEnvelopeSamples int
}

// DefaultParams returns the pipeline defaults.
func DefaultParams() Params {
	return Params{
		ValidRatio:         0.7,
		MaxMonotonicBreaks: 1,
		ScaleTolerance:     0.25,
		ActivityWeight:     0.22,
		LowPercentile:      0.20,
		HighPercentile:     0.85,
		EmphasisExponent:   1.25,
		MinEnvelopeSamples: 8,
	}
}
