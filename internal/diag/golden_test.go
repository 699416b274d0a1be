package diag

import (
	"testing"

	"provcheck/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	file := fs.Add("/workspace/tests/sample_test.php", []byte("<?php\n"), 0)

	diags := []Diagnostic{
		NewWarning(ProvNotStatic, source.Span{File: file, Start: 40, End: 48}, 12,
			`Data provider method "provider" will need to be converted to static in future.`).
			WithFixability(FixabilityFull),
		NewError(TagWrongCase, source.Span{File: file, Start: 10, End: 23}, 6,
			"Wrong tag: @dataprovider provided,\n@dataProvider expected"),
	}

	expected := "error TAG1001 tests/sample_test.php:6 Wrong tag: @dataprovider provided, @dataProvider expected\n" +
		`warning PRV2004 tests/sample_test.php:12 Data provider method "provider" will need to be converted to static in future. [fix: full]`

	if got := FormatGoldenDiagnostics(diags, fs); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatGoldenDiagnosticsEmpty(t *testing.T) {
	if got := FormatGoldenDiagnostics(nil, source.NewFileSet()); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
