package config

import (
	"fmt"
	"sort"
	"strings"

	"git.home.luguber.info/inful/refsort/internal/refdefs"
)

// LogLevel is the minimum level emitted by the logger.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// enumNormalizer maps loosely written config strings to enum values.
// Matching ignores case, surrounding whitespace and `-`/`_` differences.
type enumNormalizer[T comparable] struct {
	name         string
	values       map[string]T
	defaultValue T
	keys         []string
}

func newEnumNormalizer[T comparable](name string, values map[string]T, defaultValue T) *enumNormalizer[T] {
	n := &enumNormalizer[T]{
		name:         name,
		values:       make(map[string]T, len(values)),
		defaultValue: defaultValue,
	}
	for k, v := range values {
		key := normalizeKey(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	sort.Strings(n.keys)
	return n
}

func normalizeKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(s, "_", "-")
}

// Normalize returns the matching value or the default for unknown input.
func (n *enumNormalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[normalizeKey(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// NormalizeWithValidation treats an empty string as the default and
// rejects anything else that does not match.
func (n *enumNormalizer[T]) NormalizeWithValidation(raw string) (T, error) {
	if strings.TrimSpace(raw) == "" {
		return n.defaultValue, nil
	}
	if v, ok := n.values[normalizeKey(raw)]; ok {
		return v, nil
	}
	return n.defaultValue, fmt.Errorf("invalid %s %q (valid: %s)", n.name, raw, strings.Join(n.keys, ", "))
}

// ValidValues lists accepted spellings in sorted order.
func (n *enumNormalizer[T]) ValidValues() []string {
	return append([]string(nil), n.keys...)
}

var (
	separatorNormalizer = newEnumNormalizer("separator", map[string]refdefs.Separator{
		"blank":   refdefs.SeparatorBlank,
		"newline": refdefs.SeparatorNewline,
	}, refdefs.SeparatorBlank)

	duplicatesNormalizer = newEnumNormalizer("duplicates policy", map[string]refdefs.DuplicatePolicy{
		"last":  refdefs.DuplicatesLast,
		"first": refdefs.DuplicatesFirst,
	}, refdefs.DuplicatesLast)

	logLevelNormalizer = newEnumNormalizer("log level", map[string]LogLevel{
		"debug":   LogLevelDebug,
		"info":    LogLevelInfo,
		"warn":    LogLevelWarn,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
	}, LogLevelInfo)

	logFormatNormalizer = newEnumNormalizer("log format", map[string]LogFormat{
		"text": LogFormatText,
		"json": LogFormatJSON,
	}, LogFormatText)
)
