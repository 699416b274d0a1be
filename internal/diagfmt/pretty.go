package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"provcheck/internal/diag"
	"provcheck/internal/source"
)

type palette struct {
	err, warn, code, gutter, caret, note, fix, removed, added *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		code:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgRed),
		note:    color.New(color.FgCyan),
		fix:     color.New(color.FgGreen),
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.code, p.gutter, p.caret, p.note, p.fix, p.removed, p.added} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	if sev == diag.SevError {
		return p.err
	}
	return p.warn
}

// Pretty renders diagnostics for humans. Items are printed in Bag order, so
// call bag.Sort() first. Each diagnostic gets a header
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with a ^~~~ underline under the primary span,
// then optional notes, fixes and fix previews.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	file := fs.Get(d.Primary.File)
	if file == nil {
		fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity).Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)
		return
	}
	start, _ := fs.Resolve(d.Primary)
	line := d.Line
	if line == 0 {
		line = start.Line
	}
	col := start.Col
	if start.Line != line {
		col = 1
	}

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(file, fs, opts.PathMode), line, col,
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)

	writeSnippet(w, file, d.Primary, line, opts, p)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			pos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), spanPath(n.Span, fs, opts.PathMode), pos.Line, pos.Col, n.Msg)
		}
	}

	if opts.ShowFixes && len(d.Fixes) > 0 {
		fmt.Fprintf(w, "  %s %s\n", p.fix.Sprint("fixability:"), d.Fixability)
		for i, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s (id=%s, %s, %s)\n",
				p.fix.Sprintf("fix #%d:", i+1), fix.Title, fix.ID, fix.Kind, fix.Applicability)
			for _, edit := range fix.Edits {
				pos, _ := fs.Resolve(edit.Span)
				fmt.Fprintf(w, "    edit %s:%d:%d apply=%s\n", spanPath(edit.Span, fs, opts.PathMode), pos.Line, pos.Col, strconv.Quote(edit.NewText))
				if !opts.ShowPreview {
					continue
				}
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				fmt.Fprintln(w, "    preview:")
				for _, l := range preview.before {
					fmt.Fprintf(w, "      %s\n", p.removed.Sprint("- "+l))
				}
				for _, l := range preview.after {
					fmt.Fprintf(w, "      %s\n", p.added.Sprint("+ "+l))
				}
			}
		}
	}
}

// writeSnippet prints the primary line with opts.Context lines around it and
// underlines the part of the primary span that lies on that line.
func writeSnippet(w io.Writer, file *source.File, primary source.Span, line uint32, opts PrettyOpts, p palette) {
	ctx := uint32(max(opts.Context, 0))
	first := uint32(1)
	if line > ctx {
		first = line - ctx
	}
	last := line + ctx
	gutterWidth := len(strconv.FormatUint(uint64(last), 10))

	for ln := first; ln <= last; ln++ {
		sp, ok := file.LineSpan(ln)
		if !ok {
			break
		}
		text := expandTabs(file.Text(sp))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "...")
		}
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != line {
			continue
		}

		lo, hi := primary.Start, primary.End
		if lo < sp.Start || lo > sp.End {
			continue
		}
		hi = min(max(hi, lo), sp.End)
		raw := file.Content[sp.Start:sp.End]
		pad := runewidth.StringWidth(expandTabs(string(raw[:lo-sp.Start])))
		width := max(runewidth.StringWidth(expandTabs(string(raw[lo-sp.Start:hi-sp.Start]))), 1)
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
