// Package diag defines the diagnostic model shared by all analysis phases.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: Warning or Error, defined in severity.go.
//   - Code: numeric identifier (see codes.go) with a stable string ID such as
//     TAG1001 or PRV2004.
//   - Message: the literal message text with parameters substituted.
//   - Line: the 1-based line the diagnostic belongs to.
//   - Primary: the span of the construct on that line.
//   - Fixability: none, partial or full.
//   - Fixes: optional Fix records describing how to address the problem.
//
// # Fix suggestions
//
// A Fix carries an Applicability (AlwaysSafe, SafeWithHeuristics,
// ManualReview) that the fix engine uses for selection, and a list of
// TextEdit values. Every TextEdit replaces one whole line: it records the
// line number, the replacement text and the original text of that line, so
// an edit planned against stale content is refused instead of corrupting the
// file.
//
// # Emitting diagnostics
//
// Phases emit through a Reporter. ReportError / ReportWarning return a
// ReportBuilder that can attach notes and fixes before Emit. BagReporter
// collects into a Bag; DedupReporter filters repeats in front of another
// Reporter.
//
// Package diag does no formatting and no IO beyond the golden renderer used
// by tests; rendering lives in internal/diagfmt and fix application in
// internal/fix.
package diag
