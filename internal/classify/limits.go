package classify

// Limits carries every classification threshold. Values come from the
// [classification] config section; Validate there guarantees tolerances
// are non-negative and the episode range is ordered.
type Limits struct {
	TrailerMaxSeconds float64
	EpisodeMinSeconds float64
	EpisodeMaxSeconds float64
	TinyFileBytes     int64
	EpisodeTolerance  float64
	DoubleEpTolerance float64
	SizeTolerance     float64
	PlayAllFactorMin  float64
	PlayAllFactorSoft float64
	PlayAllMultTolMin float64
	PlayAllMultTolMax float64

	// DoubleOverPlayAllCutoff is the remaining-episode count at or below
	// which, on the last disc of a season, a track matching both the
	// double-episode and play-all criteria is forced to double-episode.
	DoubleOverPlayAllCutoff int
}

// SeasonContext is the read-only per-disc season knowledge consumed by the
// classifier. Remaining is derived from the episode-count oracle and the
// season counter; when the oracle has no answer, HasRemaining is false and
// the play-all rules that need a remaining count cannot fire.
type SeasonContext struct {
	ExpectedTotal    int
	HasExpectedTotal bool
	Remaining        int
	HasRemaining     bool
	LastDisc         bool
}

// RemainingMoreThan reports whether the remaining episode count is known
// and strictly greater than n.
func (s SeasonContext) RemainingMoreThan(n int) bool {
	return s.HasRemaining && s.Remaining > n
}

// RemainingAtLeast reports whether the remaining episode count is known
// and at least n.
func (s SeasonContext) RemainingAtLeast(n int) bool {
	return s.HasRemaining && s.Remaining >= n
}
