// Package discovery finds the Markdown documents a command operates on.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/refsort/internal/foundation/errors"
	"github.com/gobwas/glob"
)

// IsDocFile returns true if the file has a Markdown extension.
func IsDocFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// Finder expands paths into document files. Patterns are matched against the
// slash separated path relative to the walked root.
type Finder struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewFinder compiles include and exclude patterns. An empty include list
// accepts every Markdown file.
func NewFinder(include, exclude []string) (*Finder, error) {
	inc, err := compileAll(include)
	if err != nil {
		return nil, err
	}
	exc, err := compileAll(exclude)
	if err != nil {
		return nil, err
	}
	return &Finder{include: inc, exclude: exc}, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryValidation, "invalid glob pattern").
				WithContext("pattern", p).
				Build()
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// Find returns the documents under paths in lexical order without
// duplicates. Explicit file arguments are always returned; directories are
// walked recursively, skipping hidden entries and anything excluded.
func (f *Finder) Find(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot access path").
				WithContext("path", root).
				Build()
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		if err := f.walk(root, add); err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func (f *Finder) walk(root string, add func(string)) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if f.excluded(rel) || f.excluded(rel+"/") {
				return fs.SkipDir
			}
			return nil
		}

		if f.Match(rel) {
			add(path)
		}
		return nil
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to walk directory").
			WithContext("path", root).
			Build()
	}
	return nil
}

// Match reports whether a slash separated relative path is a document that
// passes the include and exclude patterns.
func (f *Finder) Match(rel string) bool {
	if !IsDocFile(rel) || f.excluded(rel) {
		return false
	}
	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func (f *Finder) excluded(rel string) bool {
	for _, g := range f.exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
