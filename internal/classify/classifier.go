package classify

import (
	"log/slog"

	"reelsort/internal/logging"
)

// Classifier assigns a category to every track of one disc. It is a pure
// decision procedure: the same tracks, window, and season context always
// produce the same outcomes.
type Classifier struct {
	limits Limits
	logger *slog.Logger
}

// NewClassifier constructs a classifier with the given thresholds.
func NewClassifier(limits Limits, logger *slog.Logger) *Classifier {
	return &Classifier{limits: limits, logger: logging.NewComponentLogger(logger, "classifier")}
}

// DiscResult is the classification of one whole disc.
type DiscResult struct {
	Window   Window
	Outcomes []Outcome
	// EpisodeDelta is the number of episode slots consumed by the disc:
	// one per episode, two per double episode.
	EpisodeDelta int
	// Fallback is set when classification failed for the disc as a whole
	// and every track was renumbered sequentially instead.
	Fallback bool
}

// ClassifyDisc evaluates every track in enumeration order. The decision
// sequence is part of the contract and must not be reordered:
//
//  1. play-all, unless the track also looks like an episode or double
//  2. double episode (advances numbering by two)
//  3. episode (advances numbering by one)
//  4. trailer
//  5. bonus
//
// startEpisode is the next episode number for the disc's season.
func (c *Classifier) ClassifyDisc(tracks []Track, startEpisode int, sctx SeasonContext) DiscResult {
	window := ComputeWindow(tracks, c.limits)
	result := DiscResult{Window: window, Outcomes: make([]Outcome, 0, len(tracks))}

	episode := startEpisode
	trailerIndex := 1
	bonusIndex := 1

	for _, track := range tracks {
		decision := c.classifyTrack(track, window, sctx)
		switch decision.Kind {
		case KindEpisode:
			decision.Episode = episode
			episode++
		case KindDoubleEpisode:
			decision.Episode = episode
			decision.EpisodeEnd = episode + 1
			episode += 2
		case KindTrailer:
			decision.Index = trailerIndex
			trailerIndex++
		case KindBonus:
			decision.Index = bonusIndex
			bonusIndex++
		}
		c.logger.Debug("track classified",
			logging.String("path", track.Path),
			logging.String("kind", string(decision.Kind)),
			logging.Bool("size_fallback", window.UseSizeFallback),
		)
		result.Outcomes = append(result.Outcomes, Outcome{Track: track, Decision: decision})
	}
	result.EpisodeDelta = episode - startEpisode

	if c.discFailed(result) {
		c.logger.Warn("no track classified; falling back to sequential track numbering",
			logging.Int("track_count", len(tracks)),
		)
		result.Outcomes = result.Outcomes[:0]
		for _, track := range tracks {
			result.Outcomes = append(result.Outcomes, Outcome{
				Track:    track,
				Decision: Decision{Kind: KindFallback, Index: track.Position},
			})
		}
		result.EpisodeDelta = 0
		result.Fallback = true
	}

	return result
}

// classifyTrack runs the ordered predicate sequence for one track.
func (c *Classifier) classifyTrack(track Track, window Window, sctx SeasonContext) Decision {
	var episode, double, playAll bool
	if window.UseSizeFallback {
		episode = isEpisodeBySize(track, window, c.limits)
		double = isDoubleEpisodeBySize(track, window, c.limits)
		playAll = isPlayAllBySize(track, window, c.limits)
	} else {
		episode = isEpisode(track, window, c.limits)
		double = isDoubleEpisode(track, window, c.limits)
		playAll = isPlayAll(track, window, c.limits, sctx)
	}
	trailer := isTrailer(track, c.limits)

	// Near the season finale double episodes are far more common than
	// play-all discs; forcing double here keeps the final episode count
	// from undershooting.
	if sctx.LastDisc && sctx.HasRemaining &&
		sctx.Remaining <= c.limits.DoubleOverPlayAllCutoff && double {
		playAll = false
	}

	switch {
	case playAll && !episode && !double:
		return Decision{Kind: KindPlayAll}
	case double:
		return Decision{Kind: KindDoubleEpisode}
	case episode:
		return Decision{Kind: KindEpisode}
	case trailer:
		return Decision{Kind: KindTrailer}
	default:
		return Decision{Kind: KindBonus}
	}
}

// discFailed detects a total classification failure: the disc offered no
// usable window in either mode and nothing matched even the trailer test,
// so every track fell through to bonus. A bonus-only disc judged against a
// real window is not a failure.
func (c *Classifier) discFailed(result DiscResult) bool {
	if len(result.Outcomes) == 0 || !result.Window.Degenerate() {
		return false
	}
	for _, outcome := range result.Outcomes {
		if outcome.Decision.Kind != KindBonus {
			return false
		}
	}
	return true
}
