// Package errors provides the classified error primitives used across refsort.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, filesystem, parse, internal)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing messages for the CLI
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryFileSystem, "read document").
//		WithContext("path", path).
//		Build()
//
// The reference-definition core never returns errors; these types cover the
// file, configuration and CLI layers around it.
package errors
