package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/refsort/internal/config"
	"git.home.luguber.info/inful/refsort/internal/discovery"
	"git.home.luguber.info/inful/refsort/internal/pipeline"
	"github.com/alecthomas/kong"
)

// Global carries state shared by all subcommands.
type Global struct {
	Logger *slog.Logger
	Config *config.Config
	Stdin  io.Reader
	Stdout io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: .refsort.yaml when present)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Fmt   FmtCmd   `cmd:"" help:"Sort and prune reference definitions"`
	Check CheckCmd `cmd:"" help:"Report documents whose reference definitions are not formatted"`
	HTML  HTMLCmd  `cmd:"" name:"html" help:"Render a document to HTML with its references resolved"`
}

// AfterApply runs after flag parsing; set up a bootstrap logger until the
// configuration is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// Load reads the configuration and builds the shared command state. The
// configured logger becomes the slog default.
func (c *CLI) Load(stdin io.Reader, stdout, stderr io.Writer) (*Global, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger(stderr, c.Verbose)
	slog.SetDefault(logger)

	return &Global{Logger: logger, Config: cfg, Stdin: stdin, Stdout: stdout}, nil
}

// ExitStatus is returned by commands that completed but must report a
// non-zero exit code.
type ExitStatus struct {
	Code int
}

func (e *ExitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func newProcessor(g *Global) *pipeline.Processor {
	return pipeline.NewProcessor(pipeline.Options{
		References:  g.Config.ReferenceOptions(),
		Fingerprint: g.Config.Fingerprint,
	}, g.Logger)
}

func findDocuments(g *Global, paths []string) ([]string, error) {
	finder, err := discovery.NewFinder(g.Config.Include, g.Config.Exclude)
	if err != nil {
		return nil, err
	}
	return finder.Find(paths)
}
