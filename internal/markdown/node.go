package markdown

import (
	"strconv"

	"git.home.luguber.info/inful/refsort/internal/refdefs"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// KindReferenceBlock is the node kind of ReferenceBlock.
var KindReferenceBlock = gmast.NewNodeKind("ReferenceBlock")

// ReferenceBlock is the synthetic trailing node carrying the ordered
// reference definitions of a document. Definitions iterate in render order;
// renderers must not re-sort them.
type ReferenceBlock struct {
	gmast.BaseBlock

	Definitions []refdefs.Definition
}

// NewReferenceBlock returns a block holding defs in the given order.
func NewReferenceBlock(defs []refdefs.Definition) *ReferenceBlock {
	return &ReferenceBlock{Definitions: defs}
}

// Kind implements gmast.Node.
func (n *ReferenceBlock) Kind() gmast.NodeKind {
	return KindReferenceBlock
}

// Dump implements gmast.Node.
func (n *ReferenceBlock) Dump(source []byte, level int) {
	kv := map[string]string{"Definitions": strconv.Itoa(len(n.Definitions))}
	for i, d := range n.Definitions {
		kv[strconv.Itoa(i)] = d.String()
	}
	gmast.DumpHelper(n, source, level, kv, nil)
}

// Markdown serialises the block as reference-definition lines.
func (n *ReferenceBlock) Markdown(sep refdefs.Separator) string {
	return refdefs.Render(n.Definitions, sep)
}

// referenceBlockHTMLRenderer renders ReferenceBlock as nothing, the same way
// CommonMark renders link reference definitions.
type referenceBlockHTMLRenderer struct{}

func (r *referenceBlockHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindReferenceBlock, r.render)
}

func (r *referenceBlockHTMLRenderer) render(_ util.BufWriter, _ []byte, _ gmast.Node, _ bool) (gmast.WalkStatus, error) {
	return gmast.WalkSkipChildren, nil
}

// Extension registers the ReferenceBlock renderer with a goldmark instance.
type Extension struct{}

// Extend implements goldmark.Extender.
func (Extension) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&referenceBlockHTMLRenderer{}, 500),
	))
}
