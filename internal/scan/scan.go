// Package scan enumerates candidate discs below a staging root. Each
// directory that directly contains remuxed MKV tracks is one disc; the
// directory and its ancestors supply the categorization context.
package scan

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"reelsort/internal/logging"
	"reelsort/internal/naming"
)

// Category separates the two classification pipelines.
type Category string

const (
	CategoryMovie Category = "movie"
	CategoryTV    Category = "tv"
)

// Disc is one enumerated source disc: a directory of ordered track files
// plus the context parsed from its name.
type Disc struct {
	Root          string
	Display       string
	Category      Category
	Series        string
	Season        int
	HasSeason     bool
	DiscNumber    int
	HasDiscNumber bool
	TrackPaths    []string
}

// Title index patterns in MakeMKV output order of preference: an explicit
// _tNN suffix, then any trailing number.
var (
	titleSuffixPattern   = regexp.MustCompile(`(?i)_t(\d{1,3})\.mkv$`)
	numberSuffixPattern  = regexp.MustCompile(`[^\d](\d{1,3})\.mkv$`)
	bareNumberPattern    = regexp.MustCompile(`(\d{1,3})\.mkv$`)
	unknownTitleIndexPos = 9999
)

// titleIndex extracts the MakeMKV title number from a track filename so
// tracks sort in rip order rather than lexically.
func titleIndex(name string) int {
	if m := numberSuffixPattern.FindStringSubmatch(name); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := titleSuffixPattern.FindStringSubmatch(name); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := bareNumberPattern.FindStringSubmatch(name); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return unknownTitleIndexPos
}

// FindDiscs walks root and returns every disc directory found, tracks
// ordered by title index then name. The walk is a fresh scan; results are
// not cached.
func FindDiscs(root string, logger *slog.Logger) ([]Disc, error) {
	logger = logging.NewComponentLogger(logger, "scan")

	var discs []Disc
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		tracks, err := trackFiles(path)
		if err != nil {
			return err
		}
		if len(tracks) == 0 {
			return nil
		}
		disc := buildDisc(root, path, tracks)
		logger.Debug("disc found",
			logging.String("root", disc.Root),
			logging.String("category", string(disc.Category)),
			logging.String("display", disc.Display),
			logging.Int("tracks", len(disc.TrackPaths)),
		)
		discs = append(discs, disc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("scan finished",
		logging.String("root", root),
		logging.Int("discs", len(discs)),
	)
	return discs, nil
}

func trackFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".mkv") {
			names = append(names, entry.Name())
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		a, b := titleIndex(names[i]), titleIndex(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

func buildDisc(root, dir string, tracks []string) Disc {
	base := filepath.Base(dir)
	display := naming.DisplayTitle(base)

	disc := Disc{
		Root:       dir,
		Display:    display,
		Category:   categoryFor(root, dir),
		TrackPaths: tracks,
	}

	parent := filepath.Base(filepath.Dir(dir))
	if n, ok := naming.ExtractSeason(base); ok {
		disc.Season, disc.HasSeason = n, true
	} else if n, ok := naming.ExtractSeason(parent); ok {
		disc.Season, disc.HasSeason = n, true
	}
	if n, ok := naming.ExtractDiscNumber(base); ok {
		disc.DiscNumber, disc.HasDiscNumber = n, true
	} else if n, ok := naming.ExtractDiscNumber(parent); ok {
		disc.DiscNumber, disc.HasDiscNumber = n, true
	}

	disc.Series = naming.SeriesKey(display)
	if disc.Series == "" {
		disc.Series = naming.SeriesKey(naming.DisplayTitle(parent))
	}
	return disc
}

// categoryFor reads the category from the path segments between the scan
// root and the disc directory: a "tv" segment marks a TV disc, anything
// else is treated as a movie.
func categoryFor(root, dir string) Category {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return CategoryMovie
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if strings.EqualFold(part, "tv") {
			return CategoryTV
		}
	}
	return CategoryMovie
}
