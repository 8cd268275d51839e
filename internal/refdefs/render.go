package refdefs

import "strings"

// Render serialises defs in the given order, one definition per line, joined
// according to sep. It returns an empty string for an empty list.
func Render(defs []Definition, sep Separator) string {
	if len(defs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(defs))
	for _, d := range defs {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, sep.joiner())
}
