package markdown

import (
	"cmp"
	"io"
	"slices"

	"git.home.luguber.info/inful/refsort/internal/refdefs"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Parser runs the reference-definition hook in front of a goldmark parser.
//
// The hook is composed explicitly: the source is handed to refdefs.Extract,
// goldmark parses the cleaned body, and a ReferenceBlock is appended to the
// resulting tree. The goldmark instance itself is never modified beyond the
// Extension registration.
type Parser struct {
	md   goldmark.Markdown
	opts refdefs.Options
}

// NewParser creates a Parser using opts for every document.
func NewParser(opts refdefs.Options) *Parser {
	return &Parser{
		md:   goldmark.New(goldmark.WithExtensions(Extension{})),
		opts: opts,
	}
}

// Document is the outcome of Parser.Parse.
type Document struct {
	// Root is the goldmark tree of Source with a trailing ReferenceBlock
	// when any definitions were retained.
	Root gmast.Node
	// Source is the cleaned body Root was parsed from.
	Source []byte

	Extraction refdefs.Extraction
}

// Parse extracts and orders the reference definitions in src and parses the
// cleaned body.
//
// The retained definitions are registered with the parse context up front,
// so reference links in the body still resolve after their definition lines
// were removed. goldmark keeps the first reference per case-folded label, so
// they are registered in document order.
func (p *Parser) Parse(src []byte) *Document {
	ex := refdefs.Extract(string(src), p.opts)
	body := []byte(ex.Body)

	inSource := slices.Clone(ex.Definitions)
	slices.SortStableFunc(inSource, func(a, b refdefs.Definition) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})

	ctx := parser.NewContext()
	for _, d := range inSource {
		ctx.AddReference(parser.NewReference([]byte(d.Label), []byte(d.Href), []byte(d.Title)))
	}

	root := p.md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))
	if len(ex.Definitions) > 0 {
		root.AppendChild(root, NewReferenceBlock(ex.Definitions))
	}

	return &Document{Root: root, Source: body, Extraction: ex}
}

// Convert parses src and renders it as HTML to w.
func (p *Parser) Convert(src []byte, w io.Writer) error {
	return p.Render(w, p.Parse(src))
}

// Render writes a parsed document as HTML.
func (p *Parser) Render(w io.Writer, doc *Document) error {
	return p.md.Renderer().Render(w, doc.Source, doc.Root)
}

// ReferenceBlock returns the trailing reference block, or nil when the
// document retained no definitions.
func (d *Document) ReferenceBlock() *ReferenceBlock {
	if d.Root == nil {
		return nil
	}
	block, _ := d.Root.LastChild().(*ReferenceBlock)
	return block
}

// Markdown renders the document back to Markdown text: the cleaned body
// followed by the ordered definition block.
func (d *Document) Markdown(sep refdefs.Separator) string {
	return d.Extraction.Text(sep)
}
