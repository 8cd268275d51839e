package config

import (
	stderrors "errors"
	"os"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/refsort/internal/foundation/errors"
	"github.com/joho/godotenv"
)

// Environment variables that override file configuration.
const (
	EnvSeparator        = "REFSORT_SEPARATOR"
	EnvDuplicates       = "REFSORT_DUPLICATES"
	EnvChangelogHeading = "REFSORT_CHANGELOG_HEADING"
	EnvKeepUnused       = "REFSORT_KEEP_UNUSED"
	EnvFingerprint      = "REFSORT_FINGERPRINT"
	EnvLogLevel         = "REFSORT_LOG_LEVEL"
	EnvLogFormat        = "REFSORT_LOG_FORMAT"
)

// envFiles are loaded in order; variables already set in the process
// environment are never overwritten.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles() error {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if stderrors.Is(err, os.ErrNotExist) {
				continue
			}
			return errors.WrapError(err, errors.CategoryConfig, "failed to load env file").
				WithContext("path", f).
				Fatal().
				Build()
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v, ok := lookupEnv(EnvSeparator); ok {
		cfg.Separator = v
	}
	if v, ok := lookupEnv(EnvDuplicates); ok {
		cfg.Duplicates = v
	}
	if v, ok := lookupEnv(EnvChangelogHeading); ok {
		cfg.ChangelogHeading = v
	}
	if v, ok := lookupBool(EnvKeepUnused); ok {
		cfg.KeepUnused = v
	}
	if v, ok := lookupBool(EnvFingerprint); ok {
		cfg.Fingerprint = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		cfg.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok {
		cfg.Logging.Format = v
	}
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// lookupBool ignores values strconv cannot parse.
func lookupBool(key string) (bool, bool) {
	v, ok := lookupEnv(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, false
	}
	return b, true
}
