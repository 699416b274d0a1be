package fix

import (
	"testing"

	"provcheck/internal/diag"
	"provcheck/internal/source"
)

func TestLineEdit(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.php", []byte("one\ntwo three\nfour"))
	file := fs.Get(id)

	sp, _ := file.LineSpan(2)
	e, ok := LineEdit(file, 2,
		Change{Start: sp.Start, End: sp.Start + 3, Text: "2"},
		Change{Start: sp.End, End: sp.End, Text: "!"},
	)
	if !ok {
		t.Fatal("LineEdit failed")
	}
	if e.NewText != "2 three!" || e.OldText != "two three" || e.Line != 2 {
		t.Fatalf("edit = %+v", e)
	}

	if _, ok := LineEdit(file, 2, Change{Start: 0, End: 1, Text: "x"}); ok {
		t.Fatal("a change outside the line must be rejected")
	}
	if _, ok := LineEdit(file, 9); ok {
		t.Fatal("missing line must be rejected")
	}
}

func TestReplaceLineAndOptions(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.php", []byte("one\ntwo\n"))
	fix, ok := ReplaceLine("rewrite", fs.Get(id), 1, "uno",
		WithID("id-1"), Preferred(), WithKind(diag.FixKindRefactor),
		WithApplicability(diag.FixApplicabilitySafeWithHeuristics))
	if !ok {
		t.Fatal("ReplaceLine failed")
	}
	if fix.ID != "id-1" || !fix.IsPreferred || fix.Kind != diag.FixKindRefactor ||
		fix.Applicability != diag.FixApplicabilitySafeWithHeuristics {
		t.Fatalf("options not applied: %+v", fix)
	}
	if len(fix.Edits) != 1 || fix.Edits[0].OldText != "one" || fix.Edits[0].NewText != "uno" {
		t.Fatalf("edits = %+v", fix.Edits)
	}
}

func TestFromEditsSortsByLine(t *testing.T) {
	fix := FromEdits("t", []diag.TextEdit{{Line: 5}, {Line: 2}, {Line: 3}})
	for i, want := range []uint32{2, 3, 5} {
		if fix.Edits[i].Line != want {
			t.Fatalf("edits not sorted: %+v", fix.Edits)
		}
	}
	if fix.Applicability != diag.FixApplicabilityAlwaysSafe || fix.Kind != diag.FixKindQuickFix {
		t.Fatal("unexpected defaults")
	}
}
