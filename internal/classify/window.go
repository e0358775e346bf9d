package classify

import "sort"

// Window is the per-disc classification window. It is derived fresh from
// one disc's tracks and never persisted. A window whose episode median is
// zero cannot classify anything as episode or double-episode; the size
// window is the fallback basis when durations are mostly unknown.
type Window struct {
	EpisodeMedian   float64
	EpisodeLow      float64
	EpisodeHigh     float64
	SizeMedian      float64
	SizeLow         float64
	SizeHigh        float64
	UseSizeFallback bool
}

// Degenerate reports whether the window offers no usable basis at all.
func (w Window) Degenerate() bool {
	return w.EpisodeMedian <= 0 && w.SizeMedian <= 0
}

// ComputeWindow derives the classification window for one disc. Duration
// candidates are tracks with a known duration inside the episode range and
// a size at or above the tiny-file floor, so trailer and bonus sized files
// cannot pollute the median. The size median is computed independently
// over all non-tiny tracks. Pure function of its inputs.
func ComputeWindow(tracks []Track, limits Limits) Window {
	var durations []float64
	var sizes []float64
	for _, t := range tracks {
		if t.HasDuration &&
			t.Duration >= limits.EpisodeMinSeconds &&
			t.Duration <= limits.EpisodeMaxSeconds &&
			t.HasSize && t.Size >= limits.TinyFileBytes {
			durations = append(durations, t.Duration)
		}
		if t.HasSize && t.Size >= limits.TinyFileBytes {
			sizes = append(sizes, float64(t.Size))
		}
	}

	w := Window{
		EpisodeMedian: median(durations),
		SizeMedian:    median(sizes),
	}
	if w.EpisodeMedian > 0 {
		w.EpisodeLow = w.EpisodeMedian * (1.0 - limits.EpisodeTolerance)
		w.EpisodeHigh = w.EpisodeMedian * (1.0 + limits.EpisodeTolerance)
	}
	if w.SizeMedian > 0 {
		w.SizeLow = w.SizeMedian * (1.0 - limits.SizeTolerance)
		w.SizeHigh = w.SizeMedian * (1.0 + limits.SizeTolerance)
	}

	// A handful of known durations is not a trustworthy basis for a whole
	// disc; majority-unknown forces the size fallback.
	minCandidates := len(tracks) / 3
	if minCandidates < 1 {
		minCandidates = 1
	}
	w.UseSizeFallback = w.EpisodeMedian <= 0 || len(durations) < minCandidates

	return w
}

// median returns the sorted-middle value, averaging the two middle values
// for even-length input. Empty input yields zero.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2.0
	}
	return sorted[mid]
}
