package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"reelsort/internal/scan"
)

func writeTrack(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte("mkv"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestFindDiscsEnumeratesDirectoriesWithTracks(t *testing.T) {
	root := t.TempDir()

	tvDisc := filepath.Join(root, "tv", "DIE_SENDUNG_S1D2")
	writeTrack(t, tvDisc, "title_t02.mkv")
	writeTrack(t, tvDisc, "title_t00.mkv")
	writeTrack(t, tvDisc, "title_t01.mkv")

	movieDisc := filepath.Join(root, "movies", "BLADE_RUNNER")
	writeTrack(t, movieDisc, "feature_t00.mkv")

	// Directories without direct MKV files are not discs.
	if err := os.MkdirAll(filepath.Join(root, "tv", "empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	discs, err := scan.FindDiscs(root, nil)
	if err != nil {
		t.Fatalf("FindDiscs: %v", err)
	}
	if len(discs) != 2 {
		t.Fatalf("disc count: got %d want 2", len(discs))
	}

	var tv, movie *scan.Disc
	for i := range discs {
		switch discs[i].Category {
		case scan.CategoryTV:
			tv = &discs[i]
		case scan.CategoryMovie:
			movie = &discs[i]
		}
	}
	if tv == nil || movie == nil {
		t.Fatalf("missing category: %+v", discs)
	}

	if tv.Series != "Die Sendung" {
		t.Fatalf("series key: got %q", tv.Series)
	}
	if !tv.HasSeason || tv.Season != 1 {
		t.Fatalf("season: got %d (known=%v)", tv.Season, tv.HasSeason)
	}
	if !tv.HasDiscNumber || tv.DiscNumber != 2 {
		t.Fatalf("disc number: got %d (known=%v)", tv.DiscNumber, tv.HasDiscNumber)
	}

	if movie.Display != "Blade Runner" {
		t.Fatalf("movie display: got %q", movie.Display)
	}
	if movie.HasSeason || movie.HasDiscNumber {
		t.Fatalf("movie disc grew TV attributes: %+v", movie)
	}
}

func TestFindDiscsOrdersTracksByTitleIndex(t *testing.T) {
	root := t.TempDir()
	disc := filepath.Join(root, "tv", "SHOW_S01")
	// Written out of order on purpose; lexical order would also be wrong
	// for two-digit indices.
	writeTrack(t, disc, "show_t10.mkv")
	writeTrack(t, disc, "show_t02.mkv")
	writeTrack(t, disc, "show_t00.mkv")

	discs, err := scan.FindDiscs(root, nil)
	if err != nil {
		t.Fatalf("FindDiscs: %v", err)
	}
	if len(discs) != 1 {
		t.Fatalf("disc count: got %d want 1", len(discs))
	}
	want := []string{"show_t00.mkv", "show_t02.mkv", "show_t10.mkv"}
	for i, path := range discs[0].TrackPaths {
		if filepath.Base(path) != want[i] {
			t.Fatalf("track %d: got %s want %s", i, filepath.Base(path), want[i])
		}
	}
}

func TestFindDiscsEmptyRoot(t *testing.T) {
	discs, err := scan.FindDiscs(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("FindDiscs: %v", err)
	}
	if len(discs) != 0 {
		t.Fatalf("expected no discs, got %d", len(discs))
	}
}
