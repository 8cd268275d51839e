package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.home.luguber.info/inful/refsort/internal/foundation/errors"
	"git.home.luguber.info/inful/refsort/internal/refdefs"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, refdefs.DefaultOptions(), cfg.ReferenceOptions())
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("nope.yaml")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_FileValues(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, DefaultFileName, `separator: NEWLINE
duplicates: first
changelog_heading: "# Release notes"
keep_unused: true
fingerprint: true
exclude:
  - "vendor/**"
logging:
  level: debug
  format: json
`)

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "newline", cfg.Separator)
	require.Equal(t, refdefs.Options{
		ChangelogHeading: "# Release notes",
		Separator:        refdefs.SeparatorNewline,
		Duplicates:       refdefs.DuplicatesFirst,
		KeepUnused:       true,
	}, cfg.ReferenceOptions())
	require.True(t, cfg.Fingerprint)
	require.Equal(t, []string{"vendor/**"}, cfg.Exclude)
	require.Equal(t, []string{"**.md", "**.markdown"}, cfg.Include)
	require.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HEADING_FROM_ENV", "# History")
	path := writeFile(t, dir, "custom.yaml", "changelog_heading: \"${HEADING_FROM_ENV}\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "# History", cfg.ChangelogHeading)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, DefaultFileName, "separator: blank\nkeep_unused: false\n")
	t.Setenv(EnvSeparator, "newline")
	t.Setenv(EnvKeepUnused, "true")
	t.Setenv(EnvFingerprint, "not-a-bool")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "newline", cfg.Separator)
	require.True(t, cfg.KeepUnused)
	require.False(t, cfg.Fingerprint)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	// Registered so the variable is unset again after the test.
	t.Setenv(EnvDuplicates, "")
	require.NoError(t, os.Unsetenv(EnvDuplicates))
	writeFile(t, dir, ".env", EnvDuplicates+"=first\n")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "first", cfg.Duplicates)
}

func TestLoad_UnknownField(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, DefaultFileName, "seperator: blank\n")

	_, err := Load("")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, DefaultFileName, "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"bad separator", func(c *Config) { c.Separator = "tab" }, "separator"},
		{"bad duplicates", func(c *Config) { c.Duplicates = "error" }, "duplicates"},
		{"empty heading", func(c *Config) { c.ChangelogHeading = "  " }, "changelog_heading"},
		{"multiline heading", func(c *Config) { c.ChangelogHeading = "# A\n# B" }, "changelog_heading"},
		{"bad glob", func(c *Config) { c.Exclude = []string{"[unclosed"} }, "exclude"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			require.True(t, errors.HasCategory(err, errors.CategoryValidation))

			ce, ok := errors.AsClassified(err)
			require.True(t, ok)
			field, _ := ce.Context().GetString("field")
			require.Equal(t, tt.field, field)
		})
	}
}

func TestValidate_CanonicalisesEnums(t *testing.T) {
	cfg := Default()
	cfg.Separator = " Blank "
	cfg.Duplicates = "FIRST"
	cfg.Logging.Level = "Warning"
	cfg.Logging.Format = ""

	require.NoError(t, cfg.Validate())
	require.Equal(t, "blank", cfg.Separator)
	require.Equal(t, "first", cfg.Duplicates)
	require.Equal(t, "warn", cfg.Logging.Level)
	require.Equal(t, "text", cfg.Logging.Format)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf, false)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.True(t, strings.HasPrefix(buf.String(), "{"))

	buf.Reset()
	cfg.NewLogger(&buf, true).Debug("verbose")
	require.Contains(t, buf.String(), "verbose")
}

func TestEnumNormalizer_ValidValues(t *testing.T) {
	require.Equal(t, []string{"blank", "newline"}, separatorNormalizer.ValidValues())
	require.Equal(t, refdefs.DuplicatesLast, duplicatesNormalizer.Normalize("bogus"))
}
