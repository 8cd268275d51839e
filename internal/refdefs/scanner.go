package refdefs

import (
	"regexp"
	"strings"
	"unicode"
)

// definitionRe matches `[label]: href "title"` occupying a whole line.
var definitionRe = regexp.MustCompile(`(?m)^\[([^\]\n]+)\]:[ \t]*(\S+)(?:[ \t]+"([^"\n]+)")?[ \t]*$`)

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// ScanResult is the output of Scan.
type ScanResult struct {
	// Body is the source with all definition lines removed and whitespace normalised.
	Body string
	// Definitions lists every matched line in source order, duplicates included.
	Definitions []Definition
}

// Scan finds every reference-definition line in src and removes it.
//
// The returned body has runs of three or more newlines collapsed to two and
// trailing whitespace trimmed. Lines that do not match are left untouched;
// Scan never fails.
func Scan(src string) ScanResult {
	matches := definitionRe.FindAllStringSubmatchIndex(src, -1)

	defs := make([]Definition, 0, len(matches))
	spans := make([]Span, 0, len(matches))

	line, lineAt := 1, 0
	for _, m := range matches {
		line += strings.Count(src[lineAt:m[0]], "\n")
		lineAt = m[0]

		def := Definition{
			Label: src[m[2]:m[3]],
			Href:  src[m[4]:m[5]],
			Span:  Span{Start: m[0], End: m[1]},
			Line:  line,
		}
		if m[6] >= 0 {
			def.Title = src[m[6]:m[7]]
		}
		defs = append(defs, def)
		spans = append(spans, def.Span)
	}

	return ScanResult{
		Body:        normalizeWhitespace(removeSpans(src, spans)),
		Definitions: defs,
	}
}

func normalizeWhitespace(s string) string {
	return strings.TrimRightFunc(blankRunRe.ReplaceAllString(s, "\n\n"), unicode.IsSpace)
}
