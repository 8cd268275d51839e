package refdefs

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Definition is one parsed `[label]: href "title"` line.
type Definition struct {
	Label string
	Href  string
	// Title is empty when the source line carried no quoted title.
	Title string

	// Version is set only when the label is a semantic version and the
	// document is changelog-shaped.
	Version *semver.Version

	// Span locates the matched line in the scanned source.
	Span Span
	// Line is the 1-based line number of the match in the scanned source.
	Line int
}

// IsVersion reports whether the definition belongs to the version group.
func (d Definition) IsVersion() bool {
	return d.Version != nil
}

// String renders the definition as a single reference-definition line.
// Label, href and title are emitted verbatim.
func (d Definition) String() string {
	var b strings.Builder
	b.Grow(len(d.Label) + len(d.Href) + len(d.Title) + 8)
	b.WriteByte('[')
	b.WriteString(d.Label)
	b.WriteString("]: ")
	b.WriteString(d.Href)
	if d.Title != "" {
		b.WriteString(` "`)
		b.WriteString(d.Title)
		b.WriteByte('"')
	}
	return b.String()
}
