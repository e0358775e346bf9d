package naming

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"reelsort/internal/classify"
)

// NameContext carries the series/title knowledge needed to render a
// destination filename for one disc's decisions.
type NameContext struct {
	// Series is the cleaned series name for TV discs, or the movie title.
	Series    string
	Season    int
	HasSeason bool
	// Edition is an optional version tag parsed from the source name,
	// rendered as " [Edition]" on the main feature.
	Edition string
}

// Target renders the canonical destination filename (without directory,
// with extension) for a decision. ext must include the leading dot.
func Target(dec classify.Decision, nc NameContext, ext string) string {
	switch dec.Kind {
	case classify.KindEpisode:
		if nc.HasSeason {
			return fmt.Sprintf("%s – S%02dE%02d%s", nc.Series, nc.Season, dec.Episode, ext)
		}
		return fmt.Sprintf("%s – E%02d%s", nc.Series, dec.Episode, ext)
	case classify.KindDoubleEpisode:
		if nc.HasSeason {
			return fmt.Sprintf("%s – S%02dE%02d-E%02d%s", nc.Series, nc.Season, dec.Episode, dec.EpisodeEnd, ext)
		}
		return fmt.Sprintf("%s – E%02d-E%02d%s", nc.Series, dec.Episode, dec.EpisodeEnd, ext)
	case classify.KindTrailer:
		if dec.Index > 1 {
			return fmt.Sprintf("%s_trailer-%d%s", nc.Series, dec.Index, ext)
		}
		return fmt.Sprintf("%s_trailer%s", nc.Series, ext)
	case classify.KindBonus:
		return fmt.Sprintf("%s [bonusmaterial] - extra%02d%s", nc.Series, dec.Index, ext)
	case classify.KindPlayAll:
		return fmt.Sprintf("%s [bonusmaterial] - playall%s", nc.Series, ext)
	case classify.KindMainFeature:
		if nc.Edition != "" {
			return fmt.Sprintf("%s [%s]%s", nc.Series, nc.Edition, ext)
		}
		return nc.Series + ext
	case classify.KindFallback:
		return fmt.Sprintf("%s track%02d%s", nc.Series, dec.Index, ext)
	default:
		return fmt.Sprintf("%s track%02d%s", nc.Series, dec.Index, ext)
	}
}

// UniquePath joins dir and filename, disambiguating against files that
// already exist in the destination directory by appending " (n)" before
// the extension until a free name is found. The check is against the real
// directory, not just names produced earlier in the same batch.
func UniquePath(dir, filename string) (string, error) {
	const maxAttempts = 10000
	candidate := filepath.Join(dir, filename)
	if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
		return candidate, nil
	} else if err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for n := 1; n <= maxAttempts; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		_, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("exhausted destination name slots for %s in %s", filename, dir)
}

// MovieDir returns the library directory for one movie, "Title (Year)"
// when the year is known.
func MovieDir(root, moviesDir string, title ParsedTitle) string {
	name := title.Name
	if title.Year != "" {
		name = fmt.Sprintf("%s (%s)", title.Name, title.Year)
	}
	return filepath.Join(root, moviesDir, name)
}

// SeasonDir returns the library directory for one season of a series,
// or the series root for season-less shows.
func SeasonDir(root, tvDir, series string, seasonNo int, hasSeason bool) string {
	if !hasSeason {
		return filepath.Join(root, tvDir, series)
	}
	return filepath.Join(root, tvDir, series, fmt.Sprintf("Season %02d", seasonNo))
}

var episodeTagPattern = regexp.MustCompile(`(?:S(\d{2}))?E(\d{2})(?:-E(\d{2}))?`)

// ParseEpisodeTag re-parses the season/episode numbers out of a name
// produced by Target. Returns season (0 when absent), first and last
// episode number.
func ParseEpisodeTag(name string) (seasonNo, episode, episodeEnd int, ok bool) {
	m := episodeTagPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, 0, false
	}
	if m[1] != "" {
		seasonNo, _ = strconv.Atoi(m[1])
	}
	episode, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		episodeEnd, _ = strconv.Atoi(m[3])
	} else {
		episodeEnd = episode
	}
	return seasonNo, episode, episodeEnd, true
}
