package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", ".refsort.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != ".refsort.yaml" {
			t.Errorf("expected context file=.refsort.yaml, got %v", file)
		}
	})

	t.Run("Wrapped chain", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := fmt.Errorf("outer: %w", WrapError(cause, CategoryFileSystem, "write document").Build())

		if !errors.Is(err, cause) {
			t.Error("expected chain to reach original cause")
		}
		if !HasCategory(err, CategoryFileSystem) {
			t.Error("expected filesystem category through wrapping")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected unclassified errors to default to internal")
		}
	})

	t.Run("WithContext does not mutate original", func(t *testing.T) {
		base := ParseError("bad front matter").Build()
		withPath := base.WithContext("path", "a.md")

		if _, ok := base.Context().Get("path"); ok {
			t.Error("expected original context to stay untouched")
		}
		if p, _ := withPath.Context().GetString("path"); p != "a.md" {
			t.Errorf("expected path=a.md, got %q", p)
		}
	})

	t.Run("Is compares category and message", func(t *testing.T) {
		a := ValidationError("bad separator").Build()
		b := ValidationError("bad separator").WithContext("value", "x").Build()
		c := ConfigError("bad separator").Build()

		if !errors.Is(a, b) {
			t.Error("expected same category and message to match")
		}
		if errors.Is(a, c) {
			t.Error("expected different category not to match")
		}
	})
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		builder  *ErrorBuilder
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
		{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
		{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError},
		{"ParseError", ParseError("test"), CategoryParse, SeverityError},
		{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.Build()
			if err.Category() != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, err.Category())
			}
			if err.Severity() != tt.severity {
				t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
			}
		})
	}
}

func TestDetail(t *testing.T) {
	err := WrapError(errors.New("boom"), CategoryParse, "rewrite front matter").
		WithContext("path", "CHANGELOG.md").
		WithContext("field", "fingerprint").
		Build()

	want := "rewrite front matter field=fingerprint path=CHANGELOG.md: boom"
	if got := err.Detail(); got != want {
		t.Errorf("Detail() = %q, want %q", got, want)
	}
}
