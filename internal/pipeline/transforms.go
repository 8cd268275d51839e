package pipeline

import (
	"bytes"
	"errors"
	"strings"

	"git.home.luguber.info/inful/refsort/internal/frontmatter"
	"git.home.luguber.info/inful/refsort/internal/refdefs"
)

// splitFrontMatter separates YAML front matter so the changelog heading check
// sees the Markdown body. A missing closing delimiter means the document has
// no front matter; the whole file is treated as body.
func splitFrontMatter(doc *Document) error {
	parts, err := frontmatter.Split(doc.Raw)
	if errors.Is(err, frontmatter.ErrMissingClosingDelimiter) {
		parts = frontmatter.Parts{Body: doc.Raw, Style: frontmatter.DetectStyle(doc.Raw)}
	} else if err != nil {
		return err
	}
	doc.Parts = parts
	doc.BodyLine = bytes.Count(doc.Raw, []byte("\n")) - bytes.Count(parts.Body, []byte("\n"))
	doc.Body = strings.ReplaceAll(string(parts.Body), "\r\n", "\n")
	return nil
}

// SplitBody returns the Markdown body of raw as the processor sees it: front
// matter removed and LF line endings.
func SplitBody(raw []byte) (string, error) {
	doc := &Document{Raw: raw}
	if err := splitFrontMatter(doc); err != nil {
		return "", err
	}
	return doc.Body, nil
}

// orderReferences moves all reference definitions into one ordered block.
func orderReferences(opts refdefs.Options) FileTransform {
	return func(doc *Document) error {
		doc.Extraction = refdefs.Extract(doc.Body, opts)
		doc.Body = doc.Extraction.Text(opts.Separator)
		return nil
	}
}

// restoreNewlines converts the body back to the document's newline style.
func restoreNewlines(doc *Document) error {
	body := doc.Body
	if doc.Parts.Style.Newline == "\r\n" {
		body = strings.ReplaceAll(body, "\n", "\r\n")
	}
	doc.Parts.Body = []byte(body)
	return nil
}

// serialize joins front matter and body into Output.
func serialize(doc *Document) error {
	doc.Output = doc.Parts.Join()
	return nil
}
