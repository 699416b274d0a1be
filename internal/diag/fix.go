package diag

import (
	"provcheck/internal/source"
)

// Fixability is the user-facing classification of a diagnostic.
type Fixability uint8

const (
	FixabilityNone Fixability = iota
	FixabilityPartial
	FixabilityFull
)

func (f Fixability) String() string {
	switch f {
	case FixabilityFull:
		return "full"
	case FixabilityPartial:
		return "partial"
	default:
		return "none"
	}
}

// FixKind is a coarse classification of the change.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactor
	FixKindRefactorRewrite
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactor:
		return "refactor"
	case FixKindRefactorRewrite:
		return "rewrite"
	default:
		return "unknown"
	}
}

// FixApplicability is the confidence the fix engine uses when selecting fixes.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	default:
		return "unknown"
	}
}

// Fixability maps applicability onto the none/partial/full scale.
func (a FixApplicability) Fixability() Fixability {
	if a == FixApplicabilityAlwaysSafe {
		return FixabilityFull
	}
	return FixabilityPartial
}

// TextEdit replaces one whole line. Span covers the line without its
// newline; OldText is the line as it was when the edit was planned and guards
// against applying to a file that has changed since.
type TextEdit struct {
	Span    source.Span
	Line    uint32
	NewText string
	OldText string
}

type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TextEdit
}
