package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"provcheck/internal/diag"
	"provcheck/internal/fix"
	"provcheck/internal/source"
)

const providerSource = "<?php\nclass a_test {\n    public function provider(): array {\n        return [];\n    }\n}\n"

// providerDiag builds a PRV2004 warning on the provider name with a fix.
func providerDiag(t *testing.T, fs *source.FileSet, id source.FileID) diag.Diagnostic {
	t.Helper()
	file := fs.Get(id)
	start := uint32(strings.Index(providerSource, "provider"))
	span := source.Span{File: id, Start: start, End: start + uint32(len("provider"))}
	d := diag.NewWarning(diag.ProvNotStatic, span, 3, `Data provider method "provider" will need to be converted to static in future.`)
	f, ok := fix.ReplaceLine("Make data provider static", file, 3,
		"    public static function provider(): array {", fix.WithID("static-provider-L3"))
	if !ok {
		t.Fatal("line 3 missing")
	}
	return d.WithFix(f).WithNote(span, "declared here")
}

// TestPathModes checks the path rendering modes
func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	id := fs.AddVirtual("/home/user/project/tests/a_test.php", []byte(providerSource))
	bag := diag.NewBag(10)
	bag.Add(providerDiag(t, fs, id))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/tests/a_test.php:3:21"},
		{"Relative path", PathModeRelative, "tests/a_test.php:3:21"},
		{"Basename only", PathModeBasename, "a_test.php:3:21"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "WARNING PRV2004") {
				t.Errorf("Expected severity and code, got:\n%s", output)
			}
		})
	}
}

func TestPrettySnippetUnderline(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a_test.php", []byte(providerSource))
	bag := diag.NewBag(10)
	bag.Add(providerDiag(t, fs, id))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 0, PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("output too short:\n%s", buf.String())
	}
	if lines[1] != " 3 |     public function provider(): array {" {
		t.Fatalf("source line = %q", lines[1])
	}
	if lines[2] != "   |                     ^~~~~~~" {
		t.Fatalf("underline = %q", lines[2])
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a_test.php", []byte(providerSource))
	bag := diag.NewBag(4)
	bag.Add(providerDiag(t, fs, id))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	for _, want := range []string{
		"note: a_test.php:3:21: declared here",
		"fixability: full",
		"fix #1: Make data provider static (id=static-provider-L3",
		`apply="    public static function provider(): array {"`,
		"preview:",
		"- " + "    public function provider(): array {",
		"+ " + "    public static function provider(): array {",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a_test.php", []byte(providerSource))
	bag := diag.NewBag(4)
	bag.Add(providerDiag(t, fs, id))

	var buf bytes.Buffer
	Short(&buf, bag, fs, PathModeBasename)
	want := `warning PRV2004 a_test.php:3 Data provider method "provider" will need to be converted to static in future. [fix: full]` + "\n"
	if buf.String() != want {
		t.Fatalf("short output = %q", buf.String())
	}
}
