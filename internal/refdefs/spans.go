package refdefs

import (
	"slices"
	"strings"
)

// Span is a byte range in a source document, End exclusive.
type Span struct {
	Start int
	End   int
}

// removeSpans deletes the given ranges from src.
//
// Ranges are applied from the end of the text toward the beginning so that
// earlier offsets stay valid. Out-of-range, inverted or overlapping spans are
// skipped; the scanner never produces them.
func removeSpans(src string, spans []Span) string {
	if len(spans) == 0 {
		return src
	}

	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b Span) int {
		if a.Start == b.Start {
			return b.End - a.End
		}
		return b.Start - a.Start
	})

	var b strings.Builder
	b.Grow(len(src))

	// Walk back to front, collecting kept segments, then stitch them in order.
	kept := make([]string, 0, len(sorted)+1)
	tail := len(src)
	for _, s := range sorted {
		if s.Start < 0 || s.End < s.Start || s.End > tail {
			continue
		}
		kept = append(kept, src[s.End:tail])
		tail = s.Start
	}
	kept = append(kept, src[:tail])

	for i := len(kept) - 1; i >= 0; i-- {
		b.WriteString(kept[i])
	}
	return b.String()
}
