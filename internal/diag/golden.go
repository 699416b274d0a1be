package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"provcheck/internal/source"
)

type goldenDiagnostic struct {
	Severity   string
	Code       string
	Path       string
	Line       uint32
	Message    string
	Fixability Fixability
}

// FormatGoldenDiagnostics renders diagnostics one per line, sorted by path and
// line, in the form
//
//	error TAG1001 tests/foo_test.php:6 Wrong tag: @dataprovider provided, @dataProvider expected
//
// A fixability other than none is appended as " [fix: full]". The result is
// stable and suitable for golden files.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		rendered = append(rendered, goldenDiagnostic{
			Severity:   d.Severity.Label(),
			Code:       d.Code.ID(),
			Path:       resolvePath(fs, d.Primary.File),
			Line:       d.Line,
			Message:    sanitizeMessage(d.Message),
			Fixability: d.Fixability,
		})
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		return di.Line < dj.Line
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Message)
		if d.Fixability != FixabilityNone {
			fmt.Fprintf(&b, " [fix: %s]", d.Fixability)
		}
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func resolvePath(fs *source.FileSet, id source.FileID) string {
	file := fs.Get(id)
	if file == nil {
		return "<unknown>"
	}
	return normalizePath(file.FormatPath("relative", fs.BaseDir()))
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
