package pipeline

import (
	"git.home.luguber.info/inful/refsort/internal/frontmatter"
	"git.home.luguber.info/inful/refsort/internal/refdefs"
)

// Document represents a file being processed through the pipeline.
type Document struct {
	// Path is used for logging and error context only.
	Path string

	// Raw is the original file content.
	Raw []byte

	// Parts holds the front matter split from Raw. Parts.Body is replaced
	// by the formatted body before serialisation.
	Parts frontmatter.Parts

	// BodyLine is the number of lines in Raw that precede the body.
	BodyLine int

	// Body is the Markdown body with LF line endings while transforms run.
	Body string

	// Extraction is the outcome of the reference pass over Body.
	Extraction refdefs.Extraction

	// Output is the serialised result, set by the serialize transform.
	Output []byte
}

// FileTransform processes a document in place.
//
// Transforms run in the order the Processor registers them and share the
// Document; a returned error stops the chain for that document.
type FileTransform func(doc *Document) error

// namedTransform pairs a transform with the name used in logs.
type namedTransform struct {
	name string
	fn   FileTransform
}
