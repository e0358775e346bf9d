package classify

import (
	"sort"

	"reelsort/internal/logging"
)

const mainFeatureMinSeconds = 45 * 60

// ClassifyMovieDisc applies the movie rule: the longest track wins as the
// main feature, short tracks are trailers, the rest is bonus material.
// Tracks are judged in order of known duration descending with unknown
// durations last, ties broken by size descending.
//
// The first sorted track qualifies as the main feature only when its
// duration is unknown or at least 45 minutes. A disc that produced only
// short tracks is suspicious: nothing is promoted, every track gets a
// sequential fallback decision, and a warning is logged.
func (c *Classifier) ClassifyMovieDisc(tracks []Track) DiscResult {
	sorted := make([]Track, len(tracks))
	copy(sorted, tracks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.HasDuration != b.HasDuration {
			return a.HasDuration
		}
		if a.HasDuration && b.HasDuration && a.Duration != b.Duration {
			return a.Duration > b.Duration
		}
		if a.HasSize != b.HasSize {
			return a.HasSize
		}
		return a.HasSize && b.HasSize && a.Size > b.Size
	})

	result := DiscResult{Outcomes: make([]Outcome, 0, len(sorted))}
	if len(sorted) == 0 {
		return result
	}

	first := sorted[0]
	if first.HasDuration && first.Duration < mainFeatureMinSeconds {
		c.logger.Warn("no plausible main feature; falling back to sequential track numbering",
			logging.String("longest_track", first.Path),
			logging.Float64("longest_duration_seconds", first.Duration),
		)
		for i, track := range sorted {
			result.Outcomes = append(result.Outcomes, Outcome{
				Track:    track,
				Decision: Decision{Kind: KindFallback, Index: i + 1},
			})
		}
		result.Fallback = true
		return result
	}

	trailerIndex := 1
	bonusIndex := 1
	for i, track := range sorted {
		var decision Decision
		switch {
		case i == 0:
			decision = Decision{Kind: KindMainFeature}
		case track.HasDuration && track.Duration >= 0 && track.Duration <= c.limits.TrailerMaxSeconds:
			decision = Decision{Kind: KindTrailer, Index: trailerIndex}
			trailerIndex++
		default:
			decision = Decision{Kind: KindBonus, Index: bonusIndex}
			bonusIndex++
		}
		result.Outcomes = append(result.Outcomes, Outcome{Track: track, Decision: decision})
	}
	return result
}
