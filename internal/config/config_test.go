package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelsort/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantStaging := filepath.Join(tempHome, ".local", "share", "reelsort", "staging")
	if cfg.Paths.StagingDir != wantStaging {
		t.Fatalf("unexpected staging dir: got %q want %q", cfg.Paths.StagingDir, wantStaging)
	}
	if cfg.Paths.LibraryDir != filepath.Join(tempHome, "library") {
		t.Fatalf("unexpected library dir: %q", cfg.Paths.LibraryDir)
	}
	if cfg.Library.MoviesDir != "movies" || cfg.Library.TVDir != "tv" {
		t.Fatalf("unexpected library layout: %+v", cfg.Library)
	}
	if cfg.Classification.TrailerMaxSeconds != 240 {
		t.Fatalf("unexpected trailer ceiling: %v", cfg.Classification.TrailerMaxSeconds)
	}
	if cfg.Classification.EpisodeMinSeconds != 18*60 || cfg.Classification.EpisodeMaxSeconds != 65*60 {
		t.Fatalf("unexpected episode range: %+v", cfg.Classification)
	}
	if cfg.Classification.DoubleOverPlayAllCutoff != 4 {
		t.Fatalf("unexpected cutoff: %d", cfg.Classification.DoubleOverPlayAllCutoff)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Behavior.DryRun {
		t.Fatal("expected dry-run disabled by default")
	}
}

func TestLoadExplicitFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reelsort.toml")
	content := `
[paths]
staging_dir = "` + filepath.Join(dir, "staging") + `"
library_dir = "` + filepath.Join(dir, "library") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[classification]
episode_tolerance = 0.2

[logging]
level = "debug"

[episode_counts]
"die sendung s01" = 13
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolution: exists=%v path=%q", exists, resolved)
	}
	if cfg.Classification.EpisodeTolerance != 0.2 {
		t.Fatalf("tolerance override lost: %v", cfg.Classification.EpisodeTolerance)
	}
	// Untouched sections keep their defaults.
	if cfg.Classification.TrailerMaxSeconds != 240 {
		t.Fatalf("default clobbered: %v", cfg.Classification.TrailerMaxSeconds)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging override lost: %q", cfg.Logging.Level)
	}
	if cfg.EpisodeCounts["die sendung s01"] != 13 {
		t.Fatalf("episode counts lost: %+v", cfg.EpisodeCounts)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		section string
		wantErr string
	}{
		{
			name:    "tolerance out of range",
			section: "[classification]\nepisode_tolerance = 1.5\n",
			wantErr: "episode_tolerance",
		},
		{
			name:    "inverted episode range",
			section: "[classification]\nepisode_min_seconds = 4000\nepisode_max_seconds = 3000\n",
			wantErr: "episode_min_seconds",
		},
		{
			name:    "soft factor above hard",
			section: "[classification]\nplayall_factor_soft = 3.5\n",
			wantErr: "playall_factor_soft",
		},
		{
			name:    "unknown log format",
			section: "[logging]\nformat = \"xml\"\n",
			wantErr: "logging.format",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "reelsort.toml")
			if err := os.WriteFile(path, []byte(tc.section), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = "/var/log/reelsort"
	if cfg.JournalPath() != filepath.Join("/var/log/reelsort", "journal.db") {
		t.Fatalf("journal path: %q", cfg.JournalPath())
	}
	if cfg.LockPath() != filepath.Join("/var/log/reelsort", "reelsort.lock") {
		t.Fatalf("lock path: %q", cfg.LockPath())
	}
	if cfg.LogFilePath() != filepath.Join("/var/log/reelsort", "reelsort.log") {
		t.Fatalf("log file path: %q", cfg.LogFilePath())
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config failed to load: exists=%v err=%v", exists, err)
	}
}

func TestLimitsMirrorsClassificationSection(t *testing.T) {
	cfg := config.Default()
	cfg.Classification.EpisodeTolerance = 0.25
	cfg.Classification.DoubleOverPlayAllCutoff = 2

	limits := cfg.Limits()
	if limits.EpisodeTolerance != 0.25 {
		t.Fatalf("tolerance not carried over: %v", limits.EpisodeTolerance)
	}
	if limits.DoubleOverPlayAllCutoff != 2 {
		t.Fatalf("cutoff not carried over: %d", limits.DoubleOverPlayAllCutoff)
	}
	if limits.TinyFileBytes != cfg.Classification.TinyFileBytes {
		t.Fatalf("tiny floor not carried over: %d", limits.TinyFileBytes)
	}
}
