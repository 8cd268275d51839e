package commands

import (
	"io"
	"os"

	"git.home.luguber.info/inful/refsort/internal/foundation/errors"
	"git.home.luguber.info/inful/refsort/internal/logfields"
	"git.home.luguber.info/inful/refsort/internal/markdown"
	"git.home.luguber.info/inful/refsort/internal/pipeline"
)

// HTMLCmd implements the 'html' command.
type HTMLCmd struct {
	Path string `arg:"" optional:"" help:"Markdown file to render. Reads stdin when omitted."`
}

// Run renders one document to HTML on stdout. Front matter is skipped the way
// fmt skips it, and reference links resolve against the ordered definitions,
// including ones whose lines were moved.
func (h *HTMLCmd) Run(g *Global) error {
	var (
		raw []byte
		err error
	)
	if h.Path == "" {
		raw, err = io.ReadAll(g.Stdin)
	} else {
		raw, err = os.ReadFile(h.Path)
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "read document").
			WithContext("path", h.Path).
			Build()
	}

	body, err := pipeline.SplitBody(raw)
	if err != nil {
		return errors.ParseError("invalid front matter").
			WithCause(err).
			WithContext("path", h.Path).
			Build()
	}

	p := markdown.NewParser(g.Config.ReferenceOptions())
	doc := p.Parse([]byte(body))
	g.Logger.Debug("Parsed document",
		logfields.File(h.Path),
		logfields.Definitions(len(doc.Extraction.Definitions)),
		logfields.Pruned(len(doc.Extraction.Pruned)))

	if err := p.Render(g.Stdout, doc); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "render html").Build()
	}
	return nil
}
