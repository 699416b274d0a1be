package fix

import (
	"sort"

	"provcheck/internal/diag"
	"provcheck/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// WithKind overrides fix classification.
func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) {
		f.Kind = kind
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// Change is a byte-level replacement inside one line, in absolute file
// offsets. Start == End inserts.
type Change struct {
	Start uint32
	End   uint32
	Text  string
}

// LineEdit turns changes that all fall on line into one whole-line TextEdit.
// It reports false when the line does not exist or a change leaves it.
func LineEdit(file *source.File, line uint32, changes ...Change) (diag.TextEdit, bool) {
	sp, ok := file.LineSpan(line)
	if !ok {
		return diag.TextEdit{}, false
	}
	old := file.Text(sp)

	sorted := append([]Change(nil), changes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	text := old
	for _, c := range sorted {
		if c.Start < sp.Start || c.End > sp.End || c.End < c.Start {
			return diag.TextEdit{}, false
		}
		lo, hi := c.Start-sp.Start, c.End-sp.Start
		text = text[:lo] + c.Text + text[hi:]
	}
	return diag.TextEdit{Span: sp, Line: line, NewText: text, OldText: old}, true
}

// ReplaceLine creates a fix that rewrites line to newText.
func ReplaceLine(title string, file *source.File, line uint32, newText string, opts ...Option) (diag.Fix, bool) {
	sp, ok := file.LineSpan(line)
	if !ok {
		return diag.Fix{}, false
	}
	fix := diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         []diag.TextEdit{{Span: sp, Line: line, NewText: newText, OldText: file.Text(sp)}},
	}
	return applyOptions(fix, opts), true
}

// FromEdits wraps prepared line edits into a fix, ordered by line.
func FromEdits(title string, edits []diag.TextEdit, opts ...Option) diag.Fix {
	sorted := append([]diag.TextEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Line < sorted[j].Line })
	fix := diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         sorted,
	}
	return applyOptions(fix, opts)
}
