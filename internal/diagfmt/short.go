package diagfmt

import (
	"fmt"
	"io"

	"provcheck/internal/diag"
	"provcheck/internal/source"
)

// Short prints one line per diagnostic:
//
//	error TAG1001 tests/foo_test.php:6 Wrong tag: ...
//
// It is the format of the golden files, with a configurable path mode.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s %s %s:%d %s", d.Severity.Label(), d.Code.ID(), spanPath(d.Primary, fs, mode), d.Line, d.Message)
		if d.Fixability != diag.FixabilityNone {
			fmt.Fprintf(w, " [fix: %s]", d.Fixability)
		}
		fmt.Fprintln(w)
	}
}
