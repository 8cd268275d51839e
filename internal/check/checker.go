package check

import (
	"log/slog"

	"git.home.luguber.info/inful/refsort/internal/logfields"
	"git.home.luguber.info/inful/refsort/internal/pipeline"
)

// Checker runs rules over the formatting outcome of each file.
type Checker struct {
	processor *pipeline.Processor
	rules     []Rule
	logger    *slog.Logger
}

// NewChecker creates a checker with the default rules.
func NewChecker(processor *pipeline.Processor, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{processor: processor, rules: DefaultRules(), logger: logger}
}

// CheckFiles checks each file without modifying it. Issues are sorted by
// file and line.
func (c *Checker) CheckFiles(files []string) (*Result, error) {
	result := &Result{Issues: []Issue{}}
	for _, file := range files {
		issues, err := c.CheckFile(file)
		if err != nil {
			return result, err
		}
		result.FilesTotal++
		result.Issues = append(result.Issues, issues...)
	}
	sortIssues(result.Issues)
	return result, nil
}

// CheckFile returns the issues found in one file.
func (c *Checker) CheckFile(path string) ([]Issue, error) {
	res, err := c.processor.ProcessFile(path, false)
	if err != nil {
		return nil, err
	}
	return c.CheckResult(res), nil
}

// CheckResult applies the rules to an already processed document.
func (c *Checker) CheckResult(res *pipeline.Result) []Issue {
	var issues []Issue
	for _, rule := range c.rules {
		issues = append(issues, rule.Check(res)...)
	}
	if len(issues) > 0 {
		c.logger.Debug("Reference issues found", logfields.File(res.Path), slog.Int("issues", len(issues)))
	}
	return issues
}
