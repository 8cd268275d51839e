package refdefs

import (
	"slices"
	"strings"
)

// OrderResult is the output of Order.
type OrderResult struct {
	// Definitions is the final list: versions newest first, then plain labels ascending.
	Definitions []Definition
	// Pruned holds plain definitions dropped for lack of a usage in the body.
	Pruned []Definition
	// Duplicates lists labels defined more than once, in first-seen order.
	Duplicates []string
	// Repeated holds every occurrence after the first of a duplicated label,
	// in scan order.
	Repeated []Definition
}

// Order classifies, deduplicates, prunes and sorts scanned definitions.
//
// body is the cleaned text returned by Scan and is searched for usages of
// plain labels. Version parsing is attempted only when changelog is true;
// labels that fail to parse are handled as plain references. Version
// definitions are never pruned.
func Order(defs []Definition, body string, changelog bool, opts Options) OrderResult {
	opts = opts.withDefaults()

	unique, duplicates, repeated := dedupe(defs, opts.Duplicates)

	var versions, plain, pruned []Definition
	for _, d := range unique {
		d.Version = nil
		if changelog {
			if v, ok := ParseVersion(d.Label); ok {
				d.Version = v
				versions = append(versions, d)
				continue
			}
		}
		if !opts.KeepUnused && !IsReferenced(body, d.Label) {
			pruned = append(pruned, d)
			continue
		}
		plain = append(plain, d)
	}

	slices.SortStableFunc(versions, func(a, b Definition) int {
		return b.Version.Compare(a.Version)
	})
	slices.SortStableFunc(plain, func(a, b Definition) int {
		return strings.Compare(a.Label, b.Label)
	})

	out := make([]Definition, 0, len(versions)+len(plain))
	out = append(out, versions...)
	out = append(out, plain...)

	return OrderResult{
		Definitions: out,
		Pruned:      pruned,
		Duplicates:  duplicates,
		Repeated:    repeated,
	}
}

// dedupe collapses repeated labels. The survivor keeps the scan position of
// the first occurrence so tie-breaking stays tied to first appearance.
func dedupe(defs []Definition, policy DuplicatePolicy) ([]Definition, []string, []Definition) {
	out := make([]Definition, 0, len(defs))
	index := make(map[string]int, len(defs))
	var duplicates []string
	var repeated []Definition

	for _, d := range defs {
		i, seen := index[d.Label]
		if !seen {
			index[d.Label] = len(out)
			out = append(out, d)
			continue
		}
		repeated = append(repeated, d)
		if !slices.Contains(duplicates, d.Label) {
			duplicates = append(duplicates, d.Label)
		}
		if policy == DuplicatesLast {
			out[i] = d
		}
	}
	return out, duplicates, repeated
}
