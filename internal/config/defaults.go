package config

const (
	defaultStagingDir = "~/.local/share/reelsort/staging"
	defaultLibraryDir = "~/library"
	defaultLogDir     = "~/.local/share/reelsort/logs"
	defaultMoviesDir  = "movies"
	defaultTVDir      = "tv"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults. The
// classification thresholds are the hand-tuned values the tool has
// shipped with: a four-minute trailer ceiling, an 18–65 minute episode
// range, a 100 MiB tiny-file floor, and the play-all factors.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		Library: Library{
			MoviesDir: defaultMoviesDir,
			TVDir:     defaultTVDir,
		},
		Classification: Classification{
			TrailerMaxSeconds:       240,
			EpisodeMinSeconds:       18 * 60,
			EpisodeMaxSeconds:       65 * 60,
			TinyFileBytes:           100 * 1024 * 1024,
			EpisodeTolerance:        0.15,
			DoubleEpTolerance:       0.12,
			SizeTolerance:           0.22,
			PlayAllFactorMin:        3.0,
			PlayAllFactorSoft:       2.7,
			PlayAllMultTolMin:       240,
			PlayAllMultTolMax:       480,
			DoubleOverPlayAllCutoff: 4,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
