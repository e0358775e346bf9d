package classify

// Threshold predicates over one track and the disc's window. Every
// predicate branches on known-ness before comparing numbers; an unknown
// duration or size never participates in arithmetic.

// isTrailer recognizes trailers primarily by absolute short duration, with
// a tiny-file correction for tracks whose duration is unreliable but whose
// size is obviously too small to be content.
func isTrailer(t Track, limits Limits) bool {
	if t.HasDuration && t.Duration >= 0 && t.Duration <= limits.TrailerMaxSeconds {
		return true
	}
	return t.tiny(limits.TinyFileBytes) &&
		t.HasDuration && t.Duration > 0 &&
		t.Duration <= 0.6*limits.EpisodeMinSeconds
}

// isEpisode reports whether the track's duration falls inside the episode
// window. Tiny tracks and degenerate windows never qualify.
func isEpisode(t Track, w Window, limits Limits) bool {
	if w.EpisodeMedian <= 0 || !t.HasDuration || t.tiny(limits.TinyFileBytes) {
		return false
	}
	return t.Duration >= w.EpisodeLow && t.Duration <= w.EpisodeHigh
}

// isDoubleEpisode reports whether the track's duration exceeds the window
// and sits within the double-episode tolerance around twice the median.
func isDoubleEpisode(t Track, w Window, limits Limits) bool {
	if w.EpisodeMedian <= 0 || !t.HasDuration || t.tiny(limits.TinyFileBytes) {
		return false
	}
	if t.Duration <= w.EpisodeHigh {
		return false
	}
	return t.Duration >= (2.0-limits.DoubleEpTolerance)*w.EpisodeMedian &&
		t.Duration <= (2.0+limits.DoubleEpTolerance)*w.EpisodeMedian
}

// isPlayAll recognizes a whole-season compilation by duration. Beyond the
// hard factor, the soft factor and the multiple-of-k corridor only fire
// when the remaining episode count is known.
func isPlayAll(t Track, w Window, limits Limits, sctx SeasonContext) bool {
	if w.EpisodeMedian <= 0 || !t.HasDuration || t.Duration <= 0 {
		return false
	}
	if t.Duration >= limits.PlayAllFactorMin*w.EpisodeMedian {
		return true
	}
	if sctx.RemainingMoreThan(4) && t.Duration >= limits.PlayAllFactorSoft*w.EpisodeMedian {
		return true
	}
	for k := 3; k <= 8; k++ {
		if nearMultiple(t.Duration, float64(k)*w.EpisodeMedian, limits) && sctx.RemainingAtLeast(k) {
			return true
		}
	}
	return false
}

// nearMultiple checks the absolute corridor around a multiple of the
// median: at least PlayAllMultTolMin seconds wide, at most
// PlayAllMultTolMax, itself capped by 12% of the target.
func nearMultiple(value, target float64, limits Limits) bool {
	tol := target * 0.12
	if tol > limits.PlayAllMultTolMax {
		tol = limits.PlayAllMultTolMax
	}
	if tol < limits.PlayAllMultTolMin {
		tol = limits.PlayAllMultTolMin
	}
	diff := value - target
	if diff < 0 {
		diff = -diff
	}
	return diff <= tol
}

// Size-mode counterparts, used when the window is in size fallback. Size
// is the noisier signal, so play-all keeps only the single hard-factor
// rule and no multiple-of-k check.

func isEpisodeBySize(t Track, w Window, limits Limits) bool {
	if w.SizeMedian <= 0 || !t.HasSize || t.tiny(limits.TinyFileBytes) {
		return false
	}
	size := float64(t.Size)
	return size >= w.SizeLow && size <= w.SizeHigh
}

func isDoubleEpisodeBySize(t Track, w Window, limits Limits) bool {
	if w.SizeMedian <= 0 || !t.HasSize || t.tiny(limits.TinyFileBytes) {
		return false
	}
	size := float64(t.Size)
	if size <= w.SizeHigh {
		return false
	}
	return size >= (2.0-limits.DoubleEpTolerance)*w.SizeMedian &&
		size <= (2.0+limits.DoubleEpTolerance)*w.SizeMedian
}

func isPlayAllBySize(t Track, w Window, limits Limits) bool {
	if w.SizeMedian <= 0 || !t.HasSize || t.tiny(limits.TinyFileBytes) {
		return false
	}
	return float64(t.Size) >= limits.PlayAllFactorMin*w.SizeMedian
}
