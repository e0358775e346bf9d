package organize

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"reelsort/internal/season"
)

// Prober reports a track's playback duration in seconds. Implementations
// return ok=false when the duration cannot be determined; the classifier
// treats that as a designed degradation, not an error.
type Prober interface {
	Duration(path string) (float64, bool)
}

// SizeReader reports a track's size in bytes.
type SizeReader interface {
	Size(path string) (int64, bool)
}

// EpisodeOracle reports the externally known total episode count for a
// (series, season).
type EpisodeOracle interface {
	ExpectedEpisodes(key season.Key) (int, bool)
}

// SidecarProber reads durations from "<track>.duration" sidecar files:
// a single decimal number of seconds, as written by the upstream remux
// step. Keeps the classifier free of media probing.
type SidecarProber struct{}

func (SidecarProber) Duration(path string) (float64, bool) {
	data, err := os.ReadFile(path + ".duration")
	if err != nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}

// StatSizeReader reads sizes from the filesystem.
type StatSizeReader struct{}

func (StatSizeReader) Size(path string) (int64, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

// TableOracle serves episode counts from a configured table. Keys are
// "<series> S<season>" with a zero-padded season number, or the bare
// series name for season-less shows.
type TableOracle struct {
	counts map[string]int
}

// NewTableOracle builds an oracle over the configured count table.
func NewTableOracle(counts map[string]int) TableOracle {
	normalized := make(map[string]int, len(counts))
	for k, v := range counts {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return TableOracle{counts: normalized}
}

func (o TableOracle) ExpectedEpisodes(key season.Key) (int, bool) {
	lookup := strings.ToLower(strings.TrimSpace(key.Series))
	if key.HasSeason {
		lookup = fmt.Sprintf("%s s%02d", lookup, key.Season)
	}
	n, ok := o.counts[lookup]
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}
