package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"reelsort/internal/classify"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StagingDir string `toml:"staging_dir"`
	LibraryDir string `toml:"library_dir"`
	LogDir     string `toml:"log_dir"`
}

// Library contains configuration for the media library structure.
type Library struct {
	MoviesDir string `toml:"movies_dir"`
	TVDir     string `toml:"tv_dir"`
}

// Classification contains every threshold the track classifier uses.
type Classification struct {
	TrailerMaxSeconds       float64 `toml:"trailer_max_seconds"`
	EpisodeMinSeconds       float64 `toml:"episode_min_seconds"`
	EpisodeMaxSeconds       float64 `toml:"episode_max_seconds"`
	TinyFileBytes           int64   `toml:"tiny_file_bytes"`
	EpisodeTolerance        float64 `toml:"episode_tolerance"`
	DoubleEpTolerance       float64 `toml:"double_ep_tolerance"`
	SizeTolerance           float64 `toml:"size_tolerance"`
	PlayAllFactorMin        float64 `toml:"playall_factor_min"`
	PlayAllFactorSoft       float64 `toml:"playall_factor_soft"`
	PlayAllMultTolMin       float64 `toml:"playall_mult_tol_min"`
	PlayAllMultTolMax       float64 `toml:"playall_mult_tol_max"`
	DoubleOverPlayAllCutoff int     `toml:"double_over_playall_cutoff"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Behavior contains run-level switches.
type Behavior struct {
	DryRun bool `toml:"dry_run"`
}

// Config encapsulates all configuration values for reelsort.
type Config struct {
	Paths          Paths          `toml:"paths"`
	Library        Library        `toml:"library"`
	Classification Classification `toml:"classification"`
	Logging        Logging        `toml:"logging"`
	Behavior       Behavior       `toml:"behavior"`

	// EpisodeCounts feeds the episode-count oracle: keys look like
	// "Die Sendung S03" (or just the series name for season-less shows),
	// values are the externally known total episode count.
	EpisodeCounts map[string]int `toml:"episode_counts"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reelsort/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("reelsort.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

// EnsureDirectories creates the directories a run needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LibraryDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Limits converts the classification section into the classifier's
// threshold set.
func (c *Config) Limits() classify.Limits {
	cl := c.Classification
	return classify.Limits{
		TrailerMaxSeconds:       cl.TrailerMaxSeconds,
		EpisodeMinSeconds:       cl.EpisodeMinSeconds,
		EpisodeMaxSeconds:       cl.EpisodeMaxSeconds,
		TinyFileBytes:           cl.TinyFileBytes,
		EpisodeTolerance:        cl.EpisodeTolerance,
		DoubleEpTolerance:       cl.DoubleEpTolerance,
		SizeTolerance:           cl.SizeTolerance,
		PlayAllFactorMin:        cl.PlayAllFactorMin,
		PlayAllFactorSoft:       cl.PlayAllFactorSoft,
		PlayAllMultTolMin:       cl.PlayAllMultTolMin,
		PlayAllMultTolMax:       cl.PlayAllMultTolMax,
		DoubleOverPlayAllCutoff: cl.DoubleOverPlayAllCutoff,
	}
}

// JournalPath returns the location of the run journal database.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.LogDir, "journal.db")
}

// LockPath returns the location of the single-instance run lock.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "reelsort.lock")
}

// LogFilePath returns the log file written alongside console output.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "reelsort.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the given location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
