package fix

import (
	"fmt"

	"provcheck/internal/decl"
	"provcheck/internal/diag"
	"provcheck/internal/source"
	"provcheck/internal/token"
)

// PlanStatic classifies converting provider m to a static method:
//
//   - full: the body never mentions $this; "static" is inserted after the
//     visibility modifier, or before "function" when there is none.
//   - partial: $this is only used to call methods; the modifier is added
//     and every $this->name( becomes static::name(. The called methods may
//     still need to become static, so the fix needs manual review.
//   - none: the body reads $this or its properties; no fix is proposed.
//
// It never changes m.
func PlanStatic(f *decl.File, m *decl.Method) (diag.Fixability, *diag.Fix) {
	if m.This == decl.ThisState {
		return diag.FixabilityNone, nil
	}
	s := f.Stream
	file := s.File

	var insert Change
	if m.VisTok >= 0 {
		end := s.At(m.VisTok).Span.End
		insert = Change{Start: end, End: end, Text: " static"}
	} else {
		start := s.At(m.Function).Span.Start
		insert = Change{Start: start, End: start, Text: "static "}
	}

	byLine := map[uint32][]Change{file.LineOf(insert.Start): {insert}}
	for _, t := range m.ThisCalls {
		this, arrow := s.At(t), s.At(t+1)
		if arrow.Kind != token.Arrow && arrow.Kind != token.NullsafeArrow {
			return diag.FixabilityNone, nil
		}
		ln := file.LineOf(this.Span.Start)
		if file.LineOf(arrow.Span.End) != ln {
			// "$this" and "->" on different lines; cannot be a line edit
			return diag.FixabilityNone, nil
		}
		byLine[ln] = append(byLine[ln], Change{Start: this.Span.Start, End: arrow.Span.End, Text: "static::"})
	}

	edits, ok := lineEdits(file, byLine)
	if !ok {
		return diag.FixabilityNone, nil
	}

	id := fmt.Sprintf("static-%s-L%d", m.Name, m.Line)
	if len(m.ThisCalls) == 0 {
		fix := FromEdits("Make data provider static", edits, WithID(id), Preferred())
		return diag.FixabilityFull, &fix
	}
	fix := FromEdits("Make data provider static and call helpers statically", edits,
		WithID(id),
		WithKind(diag.FixKindRefactorRewrite),
		WithApplicability(diag.FixApplicabilityManualReview),
	)
	return diag.FixabilityPartial, &fix
}

func lineEdits(file *source.File, byLine map[uint32][]Change) ([]diag.TextEdit, bool) {
	edits := make([]diag.TextEdit, 0, len(byLine))
	for ln, changes := range byLine {
		e, ok := LineEdit(file, ln, changes...)
		if !ok {
			return nil, false
		}
		edits = append(edits, e)
	}
	return edits, true
}
