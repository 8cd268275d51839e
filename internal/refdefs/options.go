package refdefs

// DefaultChangelogHeading is the heading that marks a changelog-shaped document.
const DefaultChangelogHeading = "# Changelog"

// Separator selects how emitted definition lines are joined.
type Separator string

const (
	// SeparatorBlank puts an empty line between definitions.
	SeparatorBlank Separator = "blank"
	// SeparatorNewline puts each definition on the next line.
	SeparatorNewline Separator = "newline"
)

func (s Separator) joiner() string {
	if s == SeparatorNewline {
		return "\n"
	}
	return "\n\n"
}

// DuplicatePolicy selects which definition survives when a label repeats.
// Every duplicate line is removed from the body regardless of policy.
type DuplicatePolicy string

const (
	// DuplicatesLast keeps the href and title of the last definition.
	DuplicatesLast DuplicatePolicy = "last"
	// DuplicatesFirst keeps the href and title of the first definition.
	DuplicatesFirst DuplicatePolicy = "first"
)

// Options controls a single format pass.
type Options struct {
	// ChangelogHeading overrides DefaultChangelogHeading.
	ChangelogHeading string
	Separator        Separator
	Duplicates       DuplicatePolicy
	// KeepUnused disables pruning of plain definitions without usages.
	KeepUnused bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		ChangelogHeading: DefaultChangelogHeading,
		Separator:        SeparatorBlank,
		Duplicates:       DuplicatesLast,
	}
}

func (o Options) withDefaults() Options {
	if o.ChangelogHeading == "" {
		o.ChangelogHeading = DefaultChangelogHeading
	}
	if o.Separator == "" {
		o.Separator = SeparatorBlank
	}
	if o.Duplicates == "" {
		o.Duplicates = DuplicatesLast
	}
	return o
}
