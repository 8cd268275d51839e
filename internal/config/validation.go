package config

import (
	"strings"

	"git.home.luguber.info/inful/refsort/internal/foundation/errors"
	"github.com/gobwas/glob"
)

// Validate checks enum fields and glob patterns. Enum fields are rewritten to
// their canonical spelling so later consumers can compare them directly.
func (c *Config) Validate() error {
	v := &configurationValidator{config: c}
	return v.validate()
}

type configurationValidator struct {
	config *Config
}

func (v *configurationValidator) validate() error {
	validators := []func() error{
		v.validateReferences,
		v.validatePatterns,
		v.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (v *configurationValidator) validateReferences() error {
	sep, err := separatorNormalizer.NormalizeWithValidation(v.config.Separator)
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid configuration").
			WithContext("field", "separator").
			Fatal().
			Build()
	}
	v.config.Separator = string(sep)

	dup, err := duplicatesNormalizer.NormalizeWithValidation(v.config.Duplicates)
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid configuration").
			WithContext("field", "duplicates").
			Fatal().
			Build()
	}
	v.config.Duplicates = string(dup)

	heading := strings.TrimSpace(v.config.ChangelogHeading)
	if heading == "" {
		return errors.ValidationError("changelog_heading must not be empty").
			WithContext("field", "changelog_heading").
			Build()
	}
	if strings.ContainsAny(heading, "\r\n") {
		return errors.ValidationError("changelog_heading must be a single line").
			WithContext("field", "changelog_heading").
			Build()
	}
	v.config.ChangelogHeading = heading
	return nil
}

func (v *configurationValidator) validatePatterns() error {
	for field, patterns := range map[string][]string{"include": v.config.Include, "exclude": v.config.Exclude} {
		for _, p := range patterns {
			if _, err := glob.Compile(p, '/'); err != nil {
				return errors.WrapError(err, errors.CategoryValidation, "invalid glob pattern").
					WithContext("field", field).
					WithContext("pattern", p).
					Fatal().
					Build()
			}
		}
	}
	return nil
}

func (v *configurationValidator) validateLogging() error {
	level, err := logLevelNormalizer.NormalizeWithValidation(v.config.Logging.Level)
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid configuration").
			WithContext("field", "logging.level").
			Fatal().
			Build()
	}
	v.config.Logging.Level = string(level)

	format, err := logFormatNormalizer.NormalizeWithValidation(v.config.Logging.Format)
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid configuration").
			WithContext("field", "logging.format").
			Fatal().
			Build()
	}
	v.config.Logging.Format = string(format)
	return nil
}
