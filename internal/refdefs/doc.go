// Package refdefs extracts, orders and re-emits Markdown link reference definitions.
//
// A reference definition is a single physical line of the form
//
//	[label]: href "title"
//
// Processing a document is one pure pass:
//   - Scan removes every definition line from the source and collapses the
//     resulting blank-line runs.
//   - Order drops duplicate labels and unused plain definitions, then sorts:
//     changelog versions newest first, everything else by byte-wise label.
//   - Render serialises the ordered list back into definition lines.
//
// Extract bundles the three steps into the (text, options) -> (body, definitions)
// hook used by host integrations; Format additionally appends the rendered
// block to the body.
//
// Input is expected to use LF line endings. The pipeline package normalises
// CRLF documents before calling into this package.
package refdefs
