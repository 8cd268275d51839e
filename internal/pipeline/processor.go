package pipeline

import (
	"bytes"
	"log/slog"
	"os"
	"time"

	ferrors "git.home.luguber.info/inful/refsort/internal/foundation/errors"
	"git.home.luguber.info/inful/refsort/internal/logfields"
	"git.home.luguber.info/inful/refsort/internal/refdefs"
)

// Options configures a Processor.
type Options struct {
	References refdefs.Options
	// Fingerprint enables refreshing an existing `fingerprint` front matter field.
	Fingerprint bool
}

// Result describes one processed document.
type Result struct {
	Path    string
	Output  []byte
	Changed bool

	// BodyLine is the number of lines before the body; add it to a
	// Definition.Line to get the line in the file.
	BodyLine int

	Changelog   bool
	Definitions []refdefs.Definition
	Pruned      []refdefs.Definition
	Duplicates  []string
	// Repeated holds the second and later definitions of duplicated labels.
	Repeated []refdefs.Definition
}

// Processor runs the transform chain over documents. It holds no per-document
// state and may be shared between goroutines.
type Processor struct {
	transforms []namedTransform
	logger     *slog.Logger
}

// NewProcessor builds the default chain for opts.
func NewProcessor(opts Options, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}

	refOpts := opts.References
	if refOpts.Separator == "" {
		refOpts.Separator = refdefs.SeparatorBlank
	}

	transforms := []namedTransform{
		{name: "split_front_matter", fn: splitFrontMatter},
		{name: "order_references", fn: orderReferences(refOpts)},
		{name: "restore_newlines", fn: restoreNewlines},
	}
	if opts.Fingerprint {
		transforms = append(transforms, namedTransform{name: "refresh_fingerprint", fn: refreshFingerprint})
	}
	transforms = append(transforms, namedTransform{name: "serialize", fn: serialize})

	return &Processor{transforms: transforms, logger: logger}
}

// Process runs the chain over raw content. path is used for logs and errors only.
func (p *Processor) Process(path string, raw []byte) (*Result, error) {
	start := time.Now()
	doc := &Document{Path: path, Raw: raw}

	for _, t := range p.transforms {
		if err := t.fn(doc); err != nil {
			p.logger.Debug("Transform failed", logfields.File(path), logfields.Transform(t.name), logfields.Error(err))
			return nil, ferrors.WrapError(err, ferrors.CategoryParse, "transform failed").
				WithContext("path", path).
				WithContext("transform", t.name).
				Build()
		}
	}

	res := &Result{
		Path:        path,
		Output:      doc.Output,
		Changed:     !bytes.Equal(raw, doc.Output),
		BodyLine:    doc.BodyLine,
		Changelog:   doc.Extraction.Changelog,
		Definitions: doc.Extraction.Definitions,
		Pruned:      doc.Extraction.Pruned,
		Duplicates:  doc.Extraction.Duplicates,
		Repeated:    doc.Extraction.Repeated,
	}

	p.logger.Debug("Processed document",
		logfields.File(path),
		logfields.Changelog(res.Changelog),
		logfields.Definitions(len(res.Definitions)),
		logfields.Pruned(len(res.Pruned)),
		logfields.Duplicates(len(res.Duplicates)),
		logfields.Changed(res.Changed),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))

	return res, nil
}

// ProcessFile reads path, processes it and, when write is true and the
// content changed, writes the result back with the original permissions.
func (p *Processor) ProcessFile(path string, write bool) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "stat document").
			WithContext("path", path).
			Build()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read document").
			WithContext("path", path).
			Build()
	}

	res, err := p.Process(path, raw)
	if err != nil {
		return nil, err
	}

	if write && res.Changed {
		if err := os.WriteFile(path, res.Output, info.Mode().Perm()); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write document").
				WithContext("path", path).
				Build()
		}
		p.logger.Info("Rewrote reference definitions", logfields.File(path))
	}

	return res, nil
}
