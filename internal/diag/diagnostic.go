package diag

import (
	"provcheck/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is immutable once emitted. Line is 1-based and always set;
// Primary narrows it down to the construct (tag text or method name).
type Diagnostic struct {
	Severity   Severity
	Code       Code
	Message    string
	Line       uint32
	Primary    source.Span
	Fixability Fixability
	Notes      []Note
	Fixes      []Fix
}

func New(sev Severity, code Code, primary source.Span, line uint32, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Line:     line,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, line uint32, msg string) Diagnostic {
	return New(SevError, code, primary, line, msg)
}

func NewWarning(code Code, primary source.Span, line uint32, msg string) Diagnostic {
	return New(SevWarning, code, primary, line, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithFix attaches fix and raises Fixability to match its applicability.
func (d Diagnostic) WithFix(fix Fix) Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	if f := fix.Applicability.Fixability(); f > d.Fixability {
		d.Fixability = f
	}
	return d
}

// WithFixability records a classification without proposing an edit.
func (d Diagnostic) WithFixability(f Fixability) Diagnostic {
	d.Fixability = f
	return d
}
