package classify

// Kind is the category assigned to a track.
type Kind string

const (
	KindMainFeature   Kind = "main_feature"
	KindEpisode       Kind = "episode"
	KindDoubleEpisode Kind = "double_episode"
	KindPlayAll       Kind = "play_all"
	KindTrailer       Kind = "trailer"
	KindBonus         Kind = "bonus"
	KindFallback      Kind = "fallback"
)

// Decision is the classification outcome for a single track. Episode and
// EpisodeEnd carry assigned episode numbers for KindEpisode and
// KindDoubleEpisode; Index carries the trailer/bonus ordinal or the
// fallback track position.
type Decision struct {
	Kind       Kind
	Episode    int
	EpisodeEnd int
	Index      int
}

// ConsumesEpisodes returns how many episode numbers the decision uses up.
func (d Decision) ConsumesEpisodes() int {
	switch d.Kind {
	case KindEpisode:
		return 1
	case KindDoubleEpisode:
		return 2
	default:
		return 0
	}
}

// Outcome pairs a track with the decision made for it.
type Outcome struct {
	Track    Track
	Decision Decision
}
