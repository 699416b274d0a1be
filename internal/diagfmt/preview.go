package diagfmt

import (
	"errors"
	"strings"

	"provcheck/internal/diag"
	"provcheck/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

var errNoPreview = errors.New("edit has no previewable line")

// buildFixEditPreview shows the line an edit rewrites as it is now and as
// it would be. NewText may span several lines.
func buildFixEditPreview(fs *source.FileSet, edit diag.TextEdit) (fixEditPreview, error) {
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixEditPreview{}, errNoPreview
	}
	line := edit.Line
	if line == 0 {
		line = file.LineOf(edit.Span.Start)
	}
	sp, ok := file.LineSpan(line)
	if !ok || edit.Span.Start < sp.Start || edit.Span.End > sp.End || edit.Span.Start > edit.Span.End {
		return fixEditPreview{}, errNoPreview
	}
	current := file.Text(sp)
	head := current[:edit.Span.Start-sp.Start]
	tail := current[edit.Span.End-sp.Start:]
	return fixEditPreview{
		before: []string{current},
		after:  strings.Split(head+edit.NewText+tail, "\n"),
	}, nil
}
