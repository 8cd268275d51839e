package check

import (
	"fmt"

	"git.home.luguber.info/inful/refsort/internal/pipeline"
)

// Rule names.
const (
	RuleOrder     = "reference-order"
	RuleUnused    = "reference-unused"
	RuleDuplicate = "reference-duplicate"
)

// Rule inspects the formatting outcome of one document.
type Rule interface {
	Name() string
	Check(res *pipeline.Result) []Issue
}

// DefaultRules returns every rule in reporting order.
func DefaultRules() []Rule {
	return []Rule{OrderRule{}, UnusedRule{}, DuplicateRule{}}
}

// OrderRule flags documents that formatting would change.
type OrderRule struct{}

func (OrderRule) Name() string { return RuleOrder }

func (r OrderRule) Check(res *pipeline.Result) []Issue {
	if !res.Changed {
		return nil
	}
	return []Issue{{
		FilePath: res.Path,
		Severity: SeverityError,
		Rule:     r.Name(),
		Message:  "reference definitions are not in canonical order",
		Fix:      "refsort fmt --write " + res.Path,
	}}
}

// UnusedRule flags plain definitions no text refers to.
type UnusedRule struct{}

func (UnusedRule) Name() string { return RuleUnused }

func (r UnusedRule) Check(res *pipeline.Result) []Issue {
	issues := make([]Issue, 0, len(res.Pruned))
	for _, d := range res.Pruned {
		issues = append(issues, Issue{
			FilePath: res.Path,
			Severity: SeverityWarning,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("reference [%s] is defined but never used", d.Label),
			Fix:      "remove the definition or set keep_unused: true",
			Line:     res.BodyLine + d.Line,
		})
	}
	return issues
}

// DuplicateRule flags labels defined more than once.
type DuplicateRule struct{}

func (DuplicateRule) Name() string { return RuleDuplicate }

func (r DuplicateRule) Check(res *pipeline.Result) []Issue {
	issues := make([]Issue, 0, len(res.Duplicates))
	reported := make(map[string]bool, len(res.Duplicates))
	for _, d := range res.Repeated {
		if reported[d.Label] {
			continue
		}
		reported[d.Label] = true
		issues = append(issues, Issue{
			FilePath: res.Path,
			Severity: SeverityWarning,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("reference [%s] is defined more than once", d.Label),
			Line:     res.BodyLine + d.Line,
		})
	}
	return issues
}
