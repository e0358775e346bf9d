package config

import "errors"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateClassification(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.StagingDir == "" {
		return errors.New("paths.staging_dir must be set")
	}
	if c.Paths.LibraryDir == "" {
		return errors.New("paths.library_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if c.Library.MoviesDir == "" {
		return errors.New("library.movies_dir must be set")
	}
	if c.Library.TVDir == "" {
		return errors.New("library.tv_dir must be set")
	}
	return nil
}

func (c *Config) validateClassification() error {
	cl := c.Classification
	if cl.TrailerMaxSeconds < 0 {
		return errors.New("classification.trailer_max_seconds must not be negative")
	}
	if cl.EpisodeMinSeconds <= 0 || cl.EpisodeMaxSeconds <= cl.EpisodeMinSeconds {
		return errors.New("classification.episode_min_seconds and episode_max_seconds must describe a positive range")
	}
	if cl.TinyFileBytes < 0 {
		return errors.New("classification.tiny_file_bytes must not be negative")
	}
	for name, tol := range map[string]float64{
		"episode_tolerance":   cl.EpisodeTolerance,
		"double_ep_tolerance": cl.DoubleEpTolerance,
		"size_tolerance":      cl.SizeTolerance,
	} {
		if tol < 0 || tol >= 1 {
			return errors.New("classification." + name + " must be in [0, 1)")
		}
	}
	if cl.PlayAllFactorSoft <= 1 || cl.PlayAllFactorMin < cl.PlayAllFactorSoft {
		return errors.New("classification.playall_factor_soft must exceed 1 and not exceed playall_factor_min")
	}
	if cl.PlayAllMultTolMin < 0 || cl.PlayAllMultTolMax < cl.PlayAllMultTolMin {
		return errors.New("classification.playall_mult_tol_min/max must describe a non-negative range")
	}
	if cl.DoubleOverPlayAllCutoff < 0 {
		return errors.New("classification.double_over_playall_cutoff must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return errors.New("logging.format must be console or json")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("logging.level must be debug, info, warn, or error")
	}
	return nil
}
