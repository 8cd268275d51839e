package refdefs

import (
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

// IsChangelog reports whether src, ignoring leading whitespace, starts with
// heading. An empty heading means DefaultChangelogHeading.
func IsChangelog(src, heading string) bool {
	if heading == "" {
		heading = DefaultChangelogHeading
	}
	return strings.HasPrefix(strings.TrimLeftFunc(src, unicode.IsSpace), heading)
}

// ParseVersion parses label as a semantic version.
//
// Parsing is lenient about a leading "v" and missing minor or patch
// components, so "v1.2", "1.2.0" and "1" all parse.
func ParseVersion(label string) (*semver.Version, bool) {
	v, err := semver.NewVersion(label)
	if err != nil {
		return nil, false
	}
	return v, true
}

// IsReferenced reports whether body uses label as `[label]` anywhere other
// than at the start of another definition (`[label]:`).
func IsReferenced(body, label string) bool {
	needle := "[" + label + "]"
	for offset := 0; offset < len(body); {
		i := strings.Index(body[offset:], needle)
		if i < 0 {
			return false
		}
		end := offset + i + len(needle)
		if end >= len(body) || body[end] != ':' {
			return true
		}
		offset = offset + i + 1
	}
	return false
}
