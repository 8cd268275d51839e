package main

import (
	stderrors "errors"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/refsort/cmd/refsort/commands"
	"git.home.luguber.info/inful/refsort/internal/foundation/errors"
	"git.home.luguber.info/inful/refsort/internal/version"
	"github.com/alecthomas/kong"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("refsort"),
		kong.Description("Sort and prune Markdown reference-style link definitions."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	err := run(parser, cli)

	var status *commands.ExitStatus
	if stderrors.As(err, &status) {
		os.Exit(status.Code)
	}
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}

func run(parser *kong.Context, cli *commands.CLI) error {
	g, err := cli.Load(os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	return parser.Run(g)
}
