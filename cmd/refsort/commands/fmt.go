package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/refsort/internal/discovery"
	"git.home.luguber.info/inful/refsort/internal/foundation/errors"
	"git.home.luguber.info/inful/refsort/internal/logfields"
	"git.home.luguber.info/inful/refsort/internal/pipeline"
	"git.home.luguber.info/inful/refsort/internal/watch"
)

// FmtCmd implements the 'fmt' command.
type FmtCmd struct {
	Paths    []string      `arg:"" optional:"" help:"Files or directories to format. Reads stdin when omitted."`
	Write    bool          `short:"w" help:"Write results back to the source files instead of stdout"`
	Watch    bool          `help:"Keep running and rewrite documents as they change (implies --write)"`
	Debounce time.Duration `default:"300ms" help:"Quiet period before changed files are formatted in --watch mode"`
}

// Run executes the fmt command.
func (f *FmtCmd) Run(g *Global) error {
	if len(f.Paths) == 0 {
		if f.Watch || f.Write {
			return errors.ValidationError("--write and --watch require at least one path").Build()
		}
		return f.formatStdin(g)
	}

	files, err := findDocuments(g, f.Paths)
	if err != nil {
		return err
	}

	p := newProcessor(g)
	write := f.Write || f.Watch
	if err := f.formatFiles(g, p, files, write); err != nil {
		return err
	}

	if !f.Watch {
		return nil
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return f.watch(ctx, g, p)
}

func (f *FmtCmd) formatStdin(g *Global) error {
	raw, err := io.ReadAll(g.Stdin)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "read stdin").Build()
	}
	res, err := newProcessor(g).Process("<stdin>", raw)
	if err != nil {
		return err
	}
	if _, err := g.Stdout.Write(res.Output); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write stdout").Build()
	}
	return nil
}

func (f *FmtCmd) formatFiles(g *Global, p *pipeline.Processor, files []string, write bool) error {
	changed := 0
	for _, file := range files {
		res, err := p.ProcessFile(file, write)
		if err != nil {
			return err
		}
		if res.Changed {
			changed++
		}
		if write {
			continue
		}
		if _, err := g.Stdout.Write(res.Output); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "write stdout").Build()
		}
	}
	g.Logger.Info("Formatted documents", logfields.Files(len(files)), slog.Int("changed", changed))
	return nil
}

func (f *FmtCmd) watch(ctx context.Context, g *Global, p *pipeline.Processor) error {
	finder, err := discovery.NewFinder(g.Config.Include, g.Config.Exclude)
	if err != nil {
		return err
	}
	w, err := watch.New(f.Paths, finder, f.Debounce, g.Logger)
	if err != nil {
		return err
	}
	return w.Run(ctx, func(_ context.Context, path string) {
		if _, err := p.ProcessFile(path, true); err != nil {
			g.Logger.Error("Failed to format document", logfields.File(path), logfields.Error(err))
		}
	})
}
