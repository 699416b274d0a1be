package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fortio.org/safecast"
)

type (
	// FileID identifies a file within its FileSet.
	FileID uint32
	// FileFlags records how a file was obtained.
	FileFlags uint8
)

const (
	// FileVirtual marks content that did not come from disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded source file. Content is already normalized: no BOM and
// LF line endings only.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags

	// lineStarts[i] is the offset of the first byte of line i+1.
	lineStarts []uint32
}

func scanLines(content []byte) []uint32 {
	starts := []uint32{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	return starts
}

// Position converts a byte offset to a line and column. A newline byte
// counts as the last column of its line.
func (f *File) Position(off uint32) LineCol {
	if len(f.lineStarts) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	idx := sort.Search(len(f.lineStarts), func(i int) bool { return f.lineStarts[i] > off }) - 1
	return LineCol{Line: uint32(idx + 1), Col: off - f.lineStarts[idx] + 1}
}

// LineOf returns the 1-based line holding byte offset off.
func (f *File) LineOf(off uint32) uint32 {
	return f.Position(off).Line
}

// LineCount is the number of lines; a trailing newline opens an empty last line.
func (f *File) LineCount() uint32 {
	return uint32(len(f.lineStarts))
}

// LineSpan returns the span of a 1-based line, excluding its newline.
func (f *File) LineSpan(line uint32) (Span, bool) {
	if line == 0 || line > f.LineCount() {
		return Span{}, false
	}
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("%s: %w", f.Path, err))
	}
	start, end := f.lineStarts[line-1], size
	if line < f.LineCount() {
		end = f.lineStarts[line] - 1
	}
	return Span{File: f.ID, Start: start, End: end}, true
}

// GetLine returns the text of a 1-based line, or "" when it does not exist.
func (f *File) GetLine(line uint32) string {
	if sp, ok := f.LineSpan(line); ok {
		return f.Text(sp)
	}
	return ""
}

// Text returns the bytes covered by sp, or "" for a span outside the file.
func (f *File) Text(sp Span) string {
	if sp.Start > sp.End || int(sp.End) > len(f.Content) {
		return ""
	}
	return string(f.Content[sp.Start:sp.End])
}

// FormatPath renders the path for output. Modes are "absolute",
// "relative" (to baseDir), "basename" and "auto", which shortens long
// absolute paths to their base name.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			return f.Path
		}
		return filepath.ToSlash(abs)
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		rel, err := RelativePath(f.Path, baseDir)
		if err != nil {
			return f.Path
		}
		return rel
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
