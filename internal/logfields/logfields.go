package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyFile        = "file"
	KeyPath        = "path"
	KeyDefinitions = "definitions"
	KeyPruned      = "pruned"
	KeyDuplicates  = "duplicates"
	KeyChangelog   = "changelog"
	KeyChanged     = "changed"
	KeyFiles       = "files"
	KeyTransform   = "transform"
	KeyEvent       = "event"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Definitions(n int) slog.Attr      { return slog.Int(KeyDefinitions, n) }
func Pruned(n int) slog.Attr           { return slog.Int(KeyPruned, n) }
func Duplicates(n int) slog.Attr       { return slog.Int(KeyDuplicates, n) }
func Changelog(b bool) slog.Attr       { return slog.Bool(KeyChangelog, b) }
func Changed(b bool) slog.Attr         { return slog.Bool(KeyChanged, b) }
func Files(n int) slog.Attr            { return slog.Int(KeyFiles, n) }
func Transform(name string) slog.Attr  { return slog.String(KeyTransform, name) }
func Event(op string) slog.Attr        { return slog.String(KeyEvent, op) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
