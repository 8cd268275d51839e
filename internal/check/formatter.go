package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter writes a check result.
type Formatter interface {
	Format(w io.Writer, result *Result) error
}

// NewFormatter creates the formatter for format ("text" or "json").
func NewFormatter(format string) Formatter {
	if format == "json" {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs one block per issue followed by a summary.
func (f *TextFormatter) Format(w io.Writer, result *Result) error {
	for _, issue := range result.Issues {
		if err := f.formatIssue(w, issue); err != nil {
			return err
		}
	}

	lines := []string{
		strings.Repeat("━", 60),
		fmt.Sprintf("%d file%s checked", result.FilesTotal, pluralize(result.FilesTotal)),
	}
	if n := result.ErrorCount(); n > 0 {
		lines = append(lines, fmt.Sprintf("%d error%s", n, pluralize(n)))
	}
	if n := result.WarningCount(); n > 0 {
		lines = append(lines, fmt.Sprintf("%d warning%s", n, pluralize(n)))
	}
	switch {
	case result.HasErrors():
		lines = append(lines, "Run: refsort fmt --write")
	case result.HasWarnings():
		lines = append(lines, "References are ordered; warnings remain.")
	default:
		lines = append(lines, "All reference definitions are in order.")
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatIssue(w io.Writer, issue Issue) error {
	icon := "⚠"
	if issue.Severity == SeverityError {
		icon = "✗"
	}

	location := issue.FilePath
	if issue.Line > 0 {
		location = fmt.Sprintf("%s:%d", issue.FilePath, issue.Line)
	}

	if _, err := fmt.Fprintf(w, "%s %s\n  %s [%s]: %s\n", icon, location, issue.Severity, issue.Rule, issue.Message); err != nil {
		return err
	}
	if issue.Fix != "" {
		if _, err := fmt.Fprintf(w, "  Fix: %s\n", issue.Fix); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	FilesTotal   int         `json:"files_total"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	FilePath string `json:"file_path"`
	Severity string `json:"severity"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// Format outputs results as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, result *Result) error {
	output := JSONOutput{
		FilesTotal:   result.FilesTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			FilePath: issue.FilePath,
			Severity: issue.Severity.String(),
			Rule:     issue.Rule,
			Message:  issue.Message,
			Fix:      issue.Fix,
			Line:     issue.Line,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
