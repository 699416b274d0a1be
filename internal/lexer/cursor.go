package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"provcheck/internal/source"
)

// Cursor is a read position over one file's content. Reads past the end
// yield 0 instead of panicking.
type Cursor struct {
	src  []byte
	file source.FileID
	Off  uint32
}

func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("%s too large to lex: %w", f.Path, err))
	}
	return Cursor{src: f.Content, file: f.ID}
}

func (c *Cursor) rest() []byte { return c.src[c.Off:] }

func (c *Cursor) EOF() bool { return int(c.Off) >= len(c.src) }

// PeekAt returns the byte n positions ahead, or 0.
func (c *Cursor) PeekAt(n uint32) byte {
	if i := int(c.Off) + int(n); i < len(c.src) {
		return c.src[i]
	}
	return 0
}

func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// Peek2 returns the next two bytes; ok is false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	return c.PeekAt(0), c.PeekAt(1), len(c.rest()) >= 2
}

func (c *Cursor) HasPrefix(s string) bool {
	rest := c.rest()
	return len(rest) >= len(s) && string(rest[:len(s)]) == s
}

// HasPrefixFold is HasPrefix ignoring ASCII case.
func (c *Cursor) HasPrefixFold(s string) bool {
	rest := c.rest()
	if len(rest) < len(s) {
		return false
	}
	for i := range len(s) {
		if lowerASCII(rest[i]) != lowerASCII(s[i]) {
			return false
		}
	}
	return true
}

// Bump consumes one byte and returns it, or 0 at EOF.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	c.BumpN(1)
	return b
}

// BumpN consumes up to n bytes.
func (c *Cursor) BumpN(n int) {
	c.Off = uint32(min(int(c.Off)+n, len(c.src)))
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Mark is a saved offset to rewind to or measure from.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}
