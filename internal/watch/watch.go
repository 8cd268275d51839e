// Package watch re-runs a handler for Markdown files as they change on disk.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/refsort/internal/discovery"
	"git.home.luguber.info/inful/refsort/internal/foundation/errors"
	"git.home.luguber.info/inful/refsort/internal/logfields"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before changed files are handled.
const DefaultDebounce = 300 * time.Millisecond

// Handler is called once per changed file after the debounce period.
type Handler func(ctx context.Context, path string)

// Watcher monitors directories and explicit files for document changes.
//
// The handler is expected to rewrite files only when their content changes,
// so the event caused by its own write settles after one extra pass.
type Watcher struct {
	fs       *fsnotify.Watcher
	finder   *discovery.Finder
	dirs     []string
	files    map[string]bool
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a watcher over roots and registers every directory below them.
func New(roots []string, finder *discovery.Finder, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to create file watcher").Build()
	}

	w := &Watcher{
		fs:       fsw,
		finder:   finder,
		files:    make(map[string]bool),
		debounce: debounce,
		logger:   logger,
	}

	for _, root := range roots {
		if err := w.addRoot(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve path").
			WithContext("path", root).
			Build()
	}
	info, err := os.Stat(abs)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot watch path").
			WithContext("path", root).
			Build()
	}

	if !info.IsDir() {
		w.files[abs] = true
		return w.add(filepath.Dir(abs))
	}

	w.dirs = append(w.dirs, abs)
	return w.addDirs(abs)
}

func (w *Watcher) add(dir string) error {
	if err := w.fs.Add(dir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch directory").
			WithContext("path", dir).
			Build()
	}
	return nil
}

// addDirs watches dir and its non-hidden subdirectories.
func (w *Watcher) addDirs(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		return w.add(path)
	})
}

// Run handles events until ctx is cancelled. The watcher is closed on return.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	defer func() { _ = w.fs.Close() }()

	w.logger.Info("Watching for changes", slog.Int("roots", len(w.dirs)+len(w.files)))

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.handleEvent(ev) {
				continue
			}
			w.logger.Debug("Change queued", logfields.File(ev.Name), logfields.Event(ev.Op.String()))
			pending[ev.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			pending = make(map[string]struct{})
			sort.Strings(paths)

			for _, p := range paths {
				if _, err := os.Stat(p); err != nil {
					continue
				}
				w.logger.Debug("File changed", logfields.File(p))
				handle(ctx, p)
			}
		}
	}
}

// handleEvent registers new directories and reports whether ev concerns a
// document that should be handled.
func (w *Watcher) handleEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if w.underDir(ev.Name) && !strings.HasPrefix(filepath.Base(ev.Name), ".") {
				if err := w.addDirs(ev.Name); err != nil {
					w.logger.Warn("Failed to watch new directory", logfields.Path(ev.Name), logfields.Error(err))
				}
			}
			return false
		}
	}

	return w.Accepts(ev.Name)
}

func (w *Watcher) underDir(path string) bool {
	_, ok := w.relative(path)
	return ok
}

// relative returns path relative to the watched directory containing it.
func (w *Watcher) relative(path string) (string, bool) {
	for _, dir := range w.dirs {
		rel, err := filepath.Rel(dir, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return filepath.ToSlash(rel), true
	}
	return "", false
}

// Accepts reports whether a change to path should reach the handler.
func (w *Watcher) Accepts(path string) bool {
	if w.files[path] {
		return true
	}
	rel, ok := w.relative(path)
	if !ok {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return false
		}
	}
	if w.finder == nil {
		return discovery.IsDocFile(rel)
	}
	return w.finder.Match(rel)
}
