package classify

import (
	"reflect"
	"testing"
)

func TestClassifyDiscAssignsEpisodeNumbersInOrder(t *testing.T) {
	limits := testLimits()
	tracks := []Track{
		knownTrack(1, 1500, 2*gig),
		knownTrack(2, 1540, 2*gig),
		knownTrack(3, 1460, 2*gig),
		knownTrack(4, 3000, 4*gig), // double episode
		knownTrack(5, 200, 2*gig),  // trailer
		knownTrack(6, 900, 2*gig),  // too short for the window, not a trailer
		knownTrack(7, 5000, 8*gig), // play-all
	}
	c := NewClassifier(limits, nil)
	result := c.ClassifyDisc(tracks, 3, SeasonContext{})

	wantKinds := []Kind{
		KindEpisode, KindEpisode, KindEpisode,
		KindDoubleEpisode, KindTrailer, KindBonus, KindPlayAll,
	}
	for i, want := range wantKinds {
		if got := result.Outcomes[i].Decision.Kind; got != want {
			t.Fatalf("track %d: got %s want %s", i+1, got, want)
		}
	}

	if got := result.Outcomes[0].Decision.Episode; got != 3 {
		t.Fatalf("first episode number: got %d want 3", got)
	}
	if got := result.Outcomes[2].Decision.Episode; got != 5 {
		t.Fatalf("third episode number: got %d want 5", got)
	}
	double := result.Outcomes[3].Decision
	if double.Episode != 6 || double.EpisodeEnd != 7 {
		t.Fatalf("double episode span: got E%d-E%d want E6-E7", double.Episode, double.EpisodeEnd)
	}
	if result.EpisodeDelta != 5 {
		t.Fatalf("episode delta: got %d want 5", result.EpisodeDelta)
	}
	consumed := 0
	for _, outcome := range result.Outcomes {
		consumed += outcome.Decision.ConsumesEpisodes()
	}
	if consumed != result.EpisodeDelta {
		t.Fatalf("delta %d disagrees with consumed slots %d", result.EpisodeDelta, consumed)
	}
	if result.Fallback {
		t.Fatal("did not expect disc fallback")
	}
}

func TestClassifyDiscTrailerAndBonusIndices(t *testing.T) {
	limits := testLimits()
	tracks := []Track{
		knownTrack(1, 1500, 2*gig),
		knownTrack(2, 1500, 2*gig),
		knownTrack(3, 100, 2*gig),
		knownTrack(4, 150, 2*gig),
		knownTrack(5, 900, 2*gig),
		knownTrack(6, 950, 2*gig),
	}
	c := NewClassifier(limits, nil)
	result := c.ClassifyDisc(tracks, 1, SeasonContext{})

	if got := result.Outcomes[2].Decision; got.Kind != KindTrailer || got.Index != 1 {
		t.Fatalf("first trailer: got %+v", got)
	}
	if got := result.Outcomes[3].Decision; got.Kind != KindTrailer || got.Index != 2 {
		t.Fatalf("second trailer: got %+v", got)
	}
	if got := result.Outcomes[4].Decision; got.Kind != KindBonus || got.Index != 1 {
		t.Fatalf("first bonus: got %+v", got)
	}
	if got := result.Outcomes[5].Decision; got.Kind != KindBonus || got.Index != 2 {
		t.Fatalf("second bonus: got %+v", got)
	}
}

func TestClassifyDiscIsDeterministic(t *testing.T) {
	limits := testLimits()
	tracks := []Track{
		knownTrack(1, 1500, 2*gig),
		knownTrack(2, 3000, 4*gig),
		knownTrack(3, 200, 2*gig),
	}
	c := NewClassifier(limits, nil)
	sctx := SeasonContext{Remaining: 6, HasRemaining: true}

	first := c.ClassifyDisc(tracks, 2, sctx)
	second := c.ClassifyDisc(tracks, 2, sctx)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different results")
	}
}

func TestClassifyDiscSizeFallbackMode(t *testing.T) {
	limits := testLimits()
	sized := func(pos int, size int64) Track {
		return Track{Path: "t.mkv", Position: pos, Size: size, HasSize: true}
	}
	tracks := []Track{
		sized(1, 2*gig),
		sized(2, 2*gig),
		sized(3, 2*gig+100),
		sized(4, 4*gig),           // double by size
		sized(5, 10*1024*1024),    // tiny, falls through to bonus
		sized(6, 7*gig),           // play-all by size
	}
	c := NewClassifier(limits, nil)
	result := c.ClassifyDisc(tracks, 1, SeasonContext{})

	if !result.Window.UseSizeFallback {
		t.Fatal("expected size fallback with no durations at all")
	}
	wantKinds := []Kind{KindEpisode, KindEpisode, KindEpisode, KindDoubleEpisode, KindBonus, KindPlayAll}
	for i, want := range wantKinds {
		if got := result.Outcomes[i].Decision.Kind; got != want {
			t.Fatalf("track %d: got %s want %s", i+1, got, want)
		}
	}
	if result.EpisodeDelta != 5 {
		t.Fatalf("episode delta: got %d want 5", result.EpisodeDelta)
	}
}

func TestClassifyDiscDoubleBeatsPlayAllNearFinale(t *testing.T) {
	// A short-median season where the double band and the 3x corridor
	// overlap: 520 seconds is both twice the 250-second median and near
	// three medians within the corridor floor.
	limits := testLimits()
	limits.EpisodeMinSeconds = 120
	limits.EpisodeMaxSeconds = 600
	tracks := []Track{
		knownTrack(1, 250, 2*gig),
		knownTrack(2, 250, 2*gig),
		knownTrack(3, 250, 2*gig),
		knownTrack(4, 520, 4*gig),
	}
	c := NewClassifier(limits, nil)
	sctx := SeasonContext{
		ExpectedTotal:    10,
		HasExpectedTotal: true,
		Remaining:        4,
		HasRemaining:     true,
		LastDisc:         true,
	}
	result := c.ClassifyDisc(tracks, 7, sctx)

	got := result.Outcomes[3].Decision
	if got.Kind != KindDoubleEpisode {
		t.Fatalf("finale track: got %s want %s", got.Kind, KindDoubleEpisode)
	}
	if got.Episode != 10 || got.EpisodeEnd != 11 {
		t.Fatalf("finale span: got E%d-E%d", got.Episode, got.EpisodeEnd)
	}
}

func TestClassifyDiscTotalFailureFallsBackSequentially(t *testing.T) {
	limits := testLimits()
	bare := func(pos int) Track {
		return Track{Path: "t.mkv", Position: pos}
	}
	tracks := []Track{bare(1), bare(2), bare(3)}
	c := NewClassifier(limits, nil)
	result := c.ClassifyDisc(tracks, 5, SeasonContext{})

	if !result.Fallback {
		t.Fatal("expected disc fallback")
	}
	if result.EpisodeDelta != 0 {
		t.Fatalf("fallback must not consume episodes, delta %d", result.EpisodeDelta)
	}
	for i, outcome := range result.Outcomes {
		if outcome.Decision.Kind != KindFallback {
			t.Fatalf("track %d: got %s want %s", i+1, outcome.Decision.Kind, KindFallback)
		}
		if outcome.Decision.Index != i+1 {
			t.Fatalf("track %d: fallback index %d", i+1, outcome.Decision.Index)
		}
	}
}

func TestClassifyDiscBonusOnlyAgainstRealWindowIsNotFailure(t *testing.T) {
	limits := testLimits()
	tracks := []Track{
		knownTrack(1, 1500, 2*gig),
		knownTrack(2, 900, 2*gig),
	}
	c := NewClassifier(limits, nil)
	result := c.ClassifyDisc(tracks, 1, SeasonContext{})
	if result.Fallback {
		t.Fatal("a real window must never trigger disc fallback")
	}
}
