package refdefs

// Extraction is the result of one format pass over a document.
type Extraction struct {
	Body        string
	Definitions []Definition
	Changelog   bool
	Pruned      []Definition
	Duplicates  []string
	Repeated    []Definition
}

// Extract runs Scan and Order over src.
//
// It is the pre-processing hook host integrations compose with their own
// parser: the body goes to the host, the definitions come back as a trailing
// block in exactly this order.
func Extract(src string, opts Options) Extraction {
	opts = opts.withDefaults()

	scanned := Scan(src)
	// Tested on the cleaned body so a definition line above the heading does
	// not change the outcome between passes.
	changelog := IsChangelog(scanned.Body, opts.ChangelogHeading)
	ordered := Order(scanned.Definitions, scanned.Body, changelog, opts)

	return Extraction{
		Body:        scanned.Body,
		Definitions: ordered.Definitions,
		Changelog:   changelog,
		Pruned:      ordered.Pruned,
		Duplicates:  ordered.Duplicates,
		Repeated:    ordered.Repeated,
	}
}

// Text joins the body and the rendered definition block, separated by one
// blank line and terminated by a single newline.
func (e Extraction) Text(sep Separator) string {
	block := Render(e.Definitions, sep)
	switch {
	case block == "" && e.Body == "":
		return ""
	case block == "":
		return e.Body + "\n"
	case e.Body == "":
		return block + "\n"
	}
	return e.Body + "\n\n" + block + "\n"
}

// Format rewrites src with all reference definitions moved into one ordered
// block at the end. Format is idempotent.
func Format(src string, opts Options) string {
	opts = opts.withDefaults()
	return Extract(src, opts).Text(opts.Separator)
}
