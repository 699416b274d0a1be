package fix

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"provcheck/internal/diag"
	"provcheck/internal/source"
)

// fileState is the working copy of one file. Every TextEdit rewrites one
// whole line, so the copy is kept as the original line slots and a line can
// be claimed by at most one fix.
type fileState struct {
	file  *source.File
	lines []string
	owner map[uint32]string
	edits int
}

func newFileState(file *source.File) *fileState {
	return &fileState{
		file:  file,
		lines: strings.Split(string(file.Content), "\n"),
		owner: make(map[uint32]string),
	}
}

// check reports why edits cannot be applied, or "" when they can.
func (st *fileState) check(edits []diag.TextEdit, baseDir string) string {
	claimed := make(map[uint32]bool, len(edits))
	for _, e := range edits {
		if e.Line == 0 || int(e.Line) > len(st.lines) {
			return "edit span out of range"
		}
		if _, taken := st.owner[e.Line]; taken || claimed[e.Line] {
			return fmt.Sprintf("conflicts with previously applied edits in %s", st.file.FormatPath("auto", baseDir))
		}
		claimed[e.Line] = true
		if st.lines[e.Line-1] != e.OldText {
			return "existing text does not match expected content"
		}
	}
	return ""
}

func (st *fileState) commit(id string, edits []diag.TextEdit) {
	for _, e := range edits {
		st.lines[e.Line-1] = e.NewText
		st.owner[e.Line] = id
	}
	st.edits += len(edits)
}

func (st *fileState) content() []byte {
	return []byte(strings.Join(st.lines, "\n"))
}

// writeFile keeps the file mode and restores the BOM and CRLF line endings
// that were stripped on load.
func writeFile(file *source.File, buf []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(file.Path); err == nil {
		mode = info.Mode()
	}
	out := buf
	if file.Flags&source.FileNormalizedCRLF != 0 {
		out = bytes.ReplaceAll(buf, []byte("\n"), []byte("\r\n"))
	}
	if file.Flags&source.FileHadBOM != 0 {
		out = append([]byte("\xEF\xBB\xBF"), out...)
	}
	if err := os.WriteFile(file.Path, out, mode); err != nil {
		return fmt.Errorf("write %s: %w", file.Path, err)
	}
	return nil
}
