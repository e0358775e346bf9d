package naming_test

import (
	"os"
	"path/filepath"
	"testing"

	"reelsort/internal/classify"
	"reelsort/internal/naming"
)

func TestTargetFilenames(t *testing.T) {
	tv := naming.NameContext{Series: "Die Sendung", Season: 1, HasSeason: true}
	flat := naming.NameContext{Series: "Die Sendung"}
	movie := naming.NameContext{Series: "Blade Runner", Edition: "Final Cut"}

	tests := []struct {
		name string
		dec  classify.Decision
		nc   naming.NameContext
		want string
	}{
		{"episode", classify.Decision{Kind: classify.KindEpisode, Episode: 3}, tv, "Die Sendung – S01E03.mkv"},
		{"episode without season", classify.Decision{Kind: classify.KindEpisode, Episode: 3}, flat, "Die Sendung – E03.mkv"},
		{"double episode", classify.Decision{Kind: classify.KindDoubleEpisode, Episode: 7, EpisodeEnd: 8}, tv, "Die Sendung – S01E07-E08.mkv"},
		{"first trailer", classify.Decision{Kind: classify.KindTrailer, Index: 1}, tv, "Die Sendung_trailer.mkv"},
		{"second trailer", classify.Decision{Kind: classify.KindTrailer, Index: 2}, tv, "Die Sendung_trailer-2.mkv"},
		{"bonus", classify.Decision{Kind: classify.KindBonus, Index: 4}, tv, "Die Sendung [bonusmaterial] - extra04.mkv"},
		{"play-all", classify.Decision{Kind: classify.KindPlayAll}, tv, "Die Sendung [bonusmaterial] - playall.mkv"},
		{"fallback", classify.Decision{Kind: classify.KindFallback, Index: 2}, tv, "Die Sendung track02.mkv"},
		{"main feature", classify.Decision{Kind: classify.KindMainFeature}, naming.NameContext{Series: "Blade Runner"}, "Blade Runner.mkv"},
		{"main feature with edition", classify.Decision{Kind: classify.KindMainFeature}, movie, "Blade Runner [Final Cut].mkv"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := naming.Target(tc.dec, tc.nc, ".mkv"); got != tc.want {
				t.Fatalf("Target = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEpisodeTagRoundTrip(t *testing.T) {
	tv := naming.NameContext{Series: "Die Sendung", Season: 3, HasSeason: true}

	single := naming.Target(classify.Decision{Kind: classify.KindEpisode, Episode: 12}, tv, ".mkv")
	seasonNo, episode, episodeEnd, ok := naming.ParseEpisodeTag(single)
	if !ok || seasonNo != 3 || episode != 12 || episodeEnd != 12 {
		t.Fatalf("single round trip: S%02d E%d-E%d ok=%v", seasonNo, episode, episodeEnd, ok)
	}

	double := naming.Target(classify.Decision{Kind: classify.KindDoubleEpisode, Episode: 5, EpisodeEnd: 6}, tv, ".mkv")
	seasonNo, episode, episodeEnd, ok = naming.ParseEpisodeTag(double)
	if !ok || seasonNo != 3 || episode != 5 || episodeEnd != 6 {
		t.Fatalf("double round trip: S%02d E%d-E%d ok=%v", seasonNo, episode, episodeEnd, ok)
	}

	if _, _, _, ok := naming.ParseEpisodeTag("Die Sendung_trailer.mkv"); ok {
		t.Fatal("trailer name must not parse as an episode tag")
	}
}

func TestUniquePathDisambiguates(t *testing.T) {
	dir := t.TempDir()

	first, err := naming.UniquePath(dir, "Show – S01E01.mkv")
	if err != nil {
		t.Fatalf("UniquePath: %v", err)
	}
	if first != filepath.Join(dir, "Show – S01E01.mkv") {
		t.Fatalf("fresh directory should yield the plain name, got %q", first)
	}

	if err := os.WriteFile(first, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed collision: %v", err)
	}
	second, err := naming.UniquePath(dir, "Show – S01E01.mkv")
	if err != nil {
		t.Fatalf("UniquePath: %v", err)
	}
	if second != filepath.Join(dir, "Show – S01E01 (1).mkv") {
		t.Fatalf("first collision suffix: got %q", second)
	}

	if err := os.WriteFile(second, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed second collision: %v", err)
	}
	third, err := naming.UniquePath(dir, "Show – S01E01.mkv")
	if err != nil {
		t.Fatalf("UniquePath: %v", err)
	}
	if third != filepath.Join(dir, "Show – S01E01 (2).mkv") {
		t.Fatalf("second collision suffix: got %q", third)
	}
}

func TestMovieDirAndSeasonDir(t *testing.T) {
	got := naming.MovieDir("/library", "movies", naming.ParsedTitle{Name: "Blade Runner", Year: "1982"})
	if got != filepath.Join("/library", "movies", "Blade Runner (1982)") {
		t.Fatalf("MovieDir with year: %q", got)
	}
	got = naming.MovieDir("/library", "movies", naming.ParsedTitle{Name: "Blade Runner"})
	if got != filepath.Join("/library", "movies", "Blade Runner") {
		t.Fatalf("MovieDir without year: %q", got)
	}

	got = naming.SeasonDir("/library", "tv", "Die Sendung", 2, true)
	if got != filepath.Join("/library", "tv", "Die Sendung", "Season 02") {
		t.Fatalf("SeasonDir: %q", got)
	}
	got = naming.SeasonDir("/library", "tv", "Die Sendung", 0, false)
	if got != filepath.Join("/library", "tv", "Die Sendung") {
		t.Fatalf("season-less SeasonDir: %q", got)
	}
}
