package commands

import (
	"git.home.luguber.info/inful/refsort/internal/check"
	"git.home.luguber.info/inful/refsort/internal/foundation/errors"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Paths  []string `arg:"" optional:"" default:"." help:"Files or directories to check"`
	Format string   `short:"f" default:"text" enum:"text,json" help:"Output format (text or json)"`
	Quiet  bool     `short:"q" help:"Only report errors; warnings do not affect the exit code"`
}

// Run executes the check command. Exit status is 2 when any document is not
// formatted and 1 when only warnings were found.
func (c *CheckCmd) Run(g *Global) error {
	files, err := findDocuments(g, c.Paths)
	if err != nil {
		return err
	}

	result, err := check.NewChecker(newProcessor(g), g.Logger).CheckFiles(files)
	if err != nil {
		return err
	}

	if c.Quiet {
		kept := result.Issues[:0]
		for _, issue := range result.Issues {
			if issue.Severity == check.SeverityError {
				kept = append(kept, issue)
			}
		}
		result.Issues = kept
	}

	if err := check.NewFormatter(c.Format).Format(g.Stdout, result); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "formatting output").Build()
	}

	switch {
	case result.HasErrors():
		return &ExitStatus{Code: 2}
	case result.HasWarnings():
		return &ExitStatus{Code: 1}
	}
	return nil
}
