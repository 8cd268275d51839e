package frontmatter

import (
	"bytes"
	"errors"
)

// Style captures the newline shape of a document so it can be rewritten
// without changing line endings.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Parts is a document split into YAML front matter and Markdown body.
type Parts struct {
	// FrontMatter is the raw YAML between the delimiters, delimiters excluded.
	FrontMatter []byte
	Body        []byte
	// Had reports whether the document opened with a front matter delimiter.
	Had   bool
	Style Style
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML front matter (`---` delimited) from the Markdown body.
//
// A document without an opening delimiter is returned as body only.
func Split(content []byte) (Parts, error) {
	style := DetectStyle(content)
	nl := style.Newline

	delim := []byte("---" + nl)
	if !bytes.HasPrefix(content, delim) {
		return Parts{Body: content, Style: style}, nil
	}

	start := len(delim)
	if bytes.HasPrefix(content[start:], delim) {
		return Parts{FrontMatter: []byte{}, Body: content[start+len(delim):], Had: true, Style: style}, nil
	}

	closing := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closing)
	if idx < 0 {
		return Parts{Style: style}, ErrMissingClosingDelimiter
	}

	return Parts{
		FrontMatter: content[start : start+idx+len(nl)],
		Body:        content[start+idx+len(closing):],
		Had:         true,
		Style:       style,
	}, nil
}

// Join reassembles the document. Without front matter the body is returned as-is.
func (p Parts) Join() []byte {
	if !p.Had {
		return p.Body
	}

	nl := p.Style.Newline
	if nl == "" {
		nl = "\n"
	}
	delim := []byte("---" + nl)

	out := make([]byte, 0, 2*len(delim)+len(p.FrontMatter)+len(p.Body))
	out = append(out, delim...)
	out = append(out, p.FrontMatter...)
	out = append(out, delim...)
	out = append(out, p.Body...)
	return out
}

// DetectStyle reports the first newline sequence in content (LF when none is
// found) and whether content ends with a newline.
func DetectStyle(content []byte) Style {
	newline := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		newline = "\r\n"
	}
	return Style{
		Newline:            newline,
		HasTrailingNewline: len(content) > 0 && content[len(content)-1] == '\n',
	}
}
