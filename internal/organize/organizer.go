// Package organize drives one run: enumerate tracks per disc, classify,
// name, move, and advance the per-season episode numbering.
package organize

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"reelsort/internal/classify"
	"reelsort/internal/config"
	"reelsort/internal/journal"
	"reelsort/internal/logging"
	"reelsort/internal/naming"
	"reelsort/internal/scan"
	"reelsort/internal/season"
	"reelsort/internal/services"
)

// Dependencies bundles the injectable collaborators.
type Dependencies struct {
	Prober  Prober
	Sizes   SizeReader
	Oracle  EpisodeOracle
	Mover   Mover
	Journal *journal.Store
}

// Organizer classifies and files away the tracks of every disc in a run.
type Organizer struct {
	cfg        *config.Config
	classifier *classify.Classifier
	counter    *season.Counter
	prober     Prober
	sizes      SizeReader
	oracle     EpisodeOracle
	mover      Mover
	journal    *journal.Store
	logger     *slog.Logger
}

// New constructs an organizer with the default collaborators: sidecar
// duration probing, stat-based sizes, the configured episode-count
// table, and a real or dry-run mover depending on configuration.
func New(cfg *config.Config, logger *slog.Logger) *Organizer {
	return NewWithDependencies(cfg, logger, Dependencies{})
}

// NewWithDependencies fills in the default collaborator for every nil
// dependency; tests inject fakes through it, the CLI injects the journal.
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, deps Dependencies) *Organizer {
	if deps.Prober == nil {
		deps.Prober = SidecarProber{}
	}
	if deps.Sizes == nil {
		deps.Sizes = StatSizeReader{}
	}
	if deps.Oracle == nil {
		deps.Oracle = NewTableOracle(cfg.EpisodeCounts)
	}
	if deps.Mover == nil {
		if cfg.Behavior.DryRun {
			deps.Mover = DryRunMover{Logger: logger}
		} else {
			deps.Mover = FSMover{}
		}
	}
	return &Organizer{
		cfg:        cfg,
		classifier: classify.NewClassifier(cfg.Limits(), logger),
		counter:    season.NewCounter(),
		prober:     deps.Prober,
		sizes:      deps.Sizes,
		oracle:     deps.Oracle,
		mover:      deps.Mover,
		journal:    deps.Journal,
		logger:     logging.NewComponentLogger(logger, "organizer"),
	}
}

// TrackResult is the decision and destination for one track.
type TrackResult struct {
	Track    classify.Track
	Decision classify.Decision
	DestPath string
	Moved    bool
	Err      error
}

// DiscReport summarizes one processed disc.
type DiscReport struct {
	Disc         scan.Disc
	Window       classify.Window
	Results      []TrackResult
	Fallback     bool
	StartEpisode int
	EpisodeDelta int
}

// RunReport summarizes a whole run.
type RunReport struct {
	RunID string
	Discs []DiscReport
}

// Run processes every enumerated disc: movies individually, TV discs
// grouped by (series, season) and ordered by disc number so episode
// numbering carries across a season's discs.
func (o *Organizer) Run(ctx context.Context, discs []scan.Disc) (RunReport, error) {
	report := RunReport{}
	if o.journal != nil {
		id, err := o.journal.BeginRun(ctx, o.cfg.Behavior.DryRun)
		if err != nil {
			o.logger.Warn("journal unavailable for this run", logging.Error(err))
		} else {
			report.RunID = id
		}
	}

	var movies, tv []scan.Disc
	for _, disc := range discs {
		if disc.Category == scan.CategoryTV {
			tv = append(tv, disc)
		} else {
			movies = append(movies, disc)
		}
	}

	for _, disc := range movies {
		dr := o.processMovieDisc(disc)
		o.recordDisc(ctx, report.RunID, dr)
		report.Discs = append(report.Discs, dr)
	}

	for _, group := range groupSeasons(tv) {
		key := group.key
		expected, hasExpected := o.oracle.ExpectedEpisodes(key)
		o.logger.Info("processing season",
			logging.String("series", key.Series),
			logging.Int("season", key.Season),
			logging.Int("discs", len(group.discs)),
			logging.Bool("expected_known", hasExpected),
			logging.Int("expected_total", expected),
		)
		for idx, disc := range group.discs {
			lastDisc := idx == len(group.discs)-1
			dr := o.processTVDisc(disc, key, expected, hasExpected, lastDisc)
			o.recordDisc(ctx, report.RunID, dr)
			report.Discs = append(report.Discs, dr)
		}
	}

	if o.journal != nil && report.RunID != "" {
		trackCount := 0
		for _, dr := range report.Discs {
			trackCount += len(dr.Results)
		}
		if err := o.journal.FinishRun(ctx, report.RunID, len(report.Discs), trackCount); err != nil {
			o.logger.Warn("failed to finalize journal run", logging.Error(err))
		}
	}
	return report, nil
}

// processTVDisc classifies one disc against its season context, names and
// moves every track, and advances the season counter exactly once by the
// consumed delta.
func (o *Organizer) processTVDisc(disc scan.Disc, key season.Key, expected int, hasExpected bool, lastDisc bool) DiscReport {
	tracks := o.buildTracks(disc)
	start := o.counter.Next(key)

	sctx := classify.SeasonContext{
		ExpectedTotal:    expected,
		HasExpectedTotal: hasExpected,
		LastDisc:         lastDisc,
	}
	if hasExpected {
		remaining := expected - (start - 1)
		if remaining < 0 {
			remaining = 0
		}
		sctx.Remaining = remaining
		sctx.HasRemaining = true
	}

	result := o.classifier.ClassifyDisc(tracks, start, sctx)
	o.logSummary(disc, result, start, sctx)

	parsed := naming.ParseTitle(key.Series)
	nc := naming.NameContext{
		Series:    parsed.Name,
		Season:    key.Season,
		HasSeason: key.HasSeason,
	}
	destDir := naming.SeasonDir(o.cfg.Paths.LibraryDir, o.cfg.Library.TVDir, parsed.Name, key.Season, key.HasSeason)

	dr := DiscReport{
		Disc:         disc,
		Window:       result.Window,
		Fallback:     result.Fallback,
		StartEpisode: start,
		EpisodeDelta: result.EpisodeDelta,
		Results:      o.moveOutcomes(result.Outcomes, nc, destDir),
	}

	o.counter.Advance(key, result.EpisodeDelta)
	return dr
}

// processMovieDisc applies the movie rule and files the tracks away.
func (o *Organizer) processMovieDisc(disc scan.Disc) DiscReport {
	tracks := o.buildTracks(disc)
	result := o.classifier.ClassifyMovieDisc(tracks)

	parsed := naming.ParseTitle(disc.Display)
	nc := naming.NameContext{
		Series:  parsed.Name,
		Edition: parsed.Edition,
	}
	destDir := naming.MovieDir(o.cfg.Paths.LibraryDir, o.cfg.Library.MoviesDir, parsed)

	return DiscReport{
		Disc:     disc,
		Window:   result.Window,
		Fallback: result.Fallback,
		Results:  o.moveOutcomes(result.Outcomes, nc, destDir),
	}
}

// moveOutcomes names each outcome against the real destination directory
// and invokes the mover. A failed move is logged and recorded; it never
// aborts the disc.
func (o *Organizer) moveOutcomes(outcomes []classify.Outcome, nc naming.NameContext, destDir string) []TrackResult {
	results := make([]TrackResult, 0, len(outcomes))
	for _, outcome := range outcomes {
		tr := TrackResult{Track: outcome.Track, Decision: outcome.Decision}
		ext := filepath.Ext(outcome.Track.Path)
		if ext == "" {
			ext = ".mkv"
		}
		filename := naming.Target(outcome.Decision, nc, ext)
		destPath, err := naming.UniquePath(destDir, filename)
		if err != nil {
			tr.Err = services.Wrap(services.ErrTransient, "organizing", "allocate destination name", "unable to allocate destination filename", err)
			o.logger.Error("destination naming failed",
				logging.String("src", outcome.Track.Path),
				logging.Error(err),
			)
			results = append(results, tr)
			continue
		}
		tr.DestPath = destPath
		if err := o.mover.Move(outcome.Track.Path, destPath); err != nil {
			tr.Err = services.Wrap(services.ErrTransient, "organizing", "move track", "failed to move track into library", err)
			o.logger.Error("move failed",
				logging.String("src", outcome.Track.Path),
				logging.String("dst", destPath),
				logging.Error(err),
			)
		} else {
			tr.Moved = true
			o.logger.Info("track filed",
				logging.String("kind", string(outcome.Decision.Kind)),
				logging.String("src", filepath.Base(outcome.Track.Path)),
				logging.String("dst", destPath),
			)
		}
		results = append(results, tr)
	}
	return results
}

// buildTracks probes duration and size for every enumerated track path.
func (o *Organizer) buildTracks(disc scan.Disc) []classify.Track {
	tracks := make([]classify.Track, 0, len(disc.TrackPaths))
	for i, path := range disc.TrackPaths {
		track := classify.Track{Path: path, Position: i + 1}
		if dur, ok := o.prober.Duration(path); ok {
			track.Duration, track.HasDuration = dur, true
		}
		if size, ok := o.sizes.Size(path); ok {
			track.Size, track.HasSize = size, true
		}
		tracks = append(tracks, track)
	}
	return tracks
}

func (o *Organizer) logSummary(disc scan.Disc, result classify.DiscResult, start int, sctx classify.SeasonContext) {
	attrs := []logging.Attr{
		logging.String("disc", disc.Display),
		logging.Float64("episode_median_seconds", result.Window.EpisodeMedian),
		logging.Float64("window_low", result.Window.EpisodeLow),
		logging.Float64("window_high", result.Window.EpisodeHigh),
		logging.String("size_median", humanize.IBytes(uint64(result.Window.SizeMedian))),
		logging.Bool("size_fallback", result.Window.UseSizeFallback),
		logging.Int("start_episode", start),
		logging.Bool("last_disc", sctx.LastDisc),
	}
	if sctx.HasRemaining {
		attrs = append(attrs, logging.Int("remaining_expected", sctx.Remaining))
	}
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	o.logger.Info("disc classified", args...)
}

func (o *Organizer) recordDisc(ctx context.Context, runID string, dr DiscReport) {
	if o.journal == nil || runID == "" {
		return
	}
	record := journal.DiscRecord{
		SourceDir:     dr.Disc.Root,
		Display:       dr.Disc.Display,
		Category:      string(dr.Disc.Category),
		Series:        dr.Disc.Series,
		Season:        dr.Disc.Season,
		HasSeason:     dr.Disc.HasSeason,
		DiscNumber:    dr.Disc.DiscNumber,
		HasDiscNumber: dr.Disc.HasDiscNumber,
		SizeFallback:  dr.Window.UseSizeFallback,
		TrackFallback: dr.Fallback,
	}
	decisions := make([]journal.DecisionRecord, 0, len(dr.Results))
	for _, tr := range dr.Results {
		dec := journal.DecisionRecord{
			Position:   tr.Track.Position,
			SourcePath: tr.Track.Path,
			DestPath:   tr.DestPath,
			Kind:       string(tr.Decision.Kind),
			Episode:    tr.Decision.Episode,
			EpisodeEnd: tr.Decision.EpisodeEnd,
			Ordinal:    tr.Decision.Index,
			Moved:      tr.Moved,
		}
		if tr.Err != nil {
			dec.Error = tr.Err.Error()
		}
		decisions = append(decisions, dec)
	}
	if err := o.journal.RecordDisc(ctx, runID, record, decisions); err != nil {
		o.logger.Warn("failed to journal disc", logging.Error(err))
	}
}

// seasonGroup is the ordered set of discs belonging to one season.
type seasonGroup struct {
	key   season.Key
	discs []scan.Disc
}

// groupSeasons buckets TV discs by (series key, season) and sorts each
// bucket by disc number, unknown numbers last, ties by path. Groups are
// returned in a deterministic order.
func groupSeasons(discs []scan.Disc) []seasonGroup {
	buckets := make(map[season.Key][]scan.Disc)
	for _, disc := range discs {
		key := season.Key{Series: disc.Series, Season: disc.Season, HasSeason: disc.HasSeason}
		buckets[key] = append(buckets[key], disc)
	}
	groups := make([]seasonGroup, 0, len(buckets))
	for key, group := range buckets {
		sort.SliceStable(group, func(i, j int) bool {
			a, b := group[i], group[j]
			an, bn := 9999, 9999
			if a.HasDiscNumber {
				an = a.DiscNumber
			}
			if b.HasDiscNumber {
				bn = b.DiscNumber
			}
			if an != bn {
				return an < bn
			}
			return a.Root < b.Root
		})
		groups = append(groups, seasonGroup{key: key, discs: group})
	}
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].key, groups[j].key
		if c := strings.Compare(a.Series, b.Series); c != 0 {
			return c < 0
		}
		return a.Season < b.Season
	})
	return groups
}
