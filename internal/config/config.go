package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"

	"git.home.luguber.info/inful/refsort/internal/foundation/errors"
	"git.home.luguber.info/inful/refsort/internal/refdefs"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file looked up in the working
// directory when no path is given.
const DefaultFileName = ".refsort.yaml"

// Config represents the application configuration.
type Config struct {
	Separator        string   `yaml:"separator"`
	Duplicates       string   `yaml:"duplicates"`
	ChangelogHeading string   `yaml:"changelog_heading"`
	KeepUnused       bool     `yaml:"keep_unused"`
	Fingerprint      bool     `yaml:"fingerprint"`
	Include          []string `yaml:"include,omitempty"`
	Exclude          []string `yaml:"exclude,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Separator:        string(refdefs.SeparatorBlank),
		Duplicates:       string(refdefs.DuplicatesLast),
		ChangelogHeading: refdefs.DefaultChangelogHeading,
		Include:          []string{"**.md", "**.markdown"},
		Logging: LoggingConfig{
			Level:  string(LogLevelInfo),
			Format: string(LogFormatText),
		},
	}
}

// Load reads configuration from path, applies `.env` and REFSORT_*
// environment overrides, and validates the result.
//
// An empty path looks for DefaultFileName and falls back to defaults when it
// does not exist. An explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(bytes.NewReader([]byte(os.ExpandEnv(string(data)))), cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config").
				WithContext("path", path).
				Fatal().
				Build()
		}
	case stderrors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config").
			WithContext("path", path).
			Fatal().
			Build()
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ReferenceOptions converts the configuration into options for the
// reference pass. Call Validate first.
func (c *Config) ReferenceOptions() refdefs.Options {
	return refdefs.Options{
		ChangelogHeading: c.ChangelogHeading,
		Separator:        separatorNormalizer.Normalize(c.Separator),
		Duplicates:       duplicatesNormalizer.Normalize(c.Duplicates),
		KeepUnused:       c.KeepUnused,
	}
}
