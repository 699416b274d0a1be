package lexer

import (
	"unicode"
	"unicode/utf8"
)

const (
	clsDigit uint8 = 1 << iota
	clsHex
	clsIdentStart
)

var byteClass [256]uint8

func init() {
	for b := '0'; b <= '9'; b++ {
		byteClass[b] = clsDigit | clsHex
	}
	for b := 'a'; b <= 'z'; b++ {
		byteClass[b] |= clsIdentStart
		byteClass[b-'a'+'A'] |= clsIdentStart
	}
	for _, b := range "abcdefABCDEF" {
		byteClass[b] |= clsHex
	}
	byteClass['_'] |= clsIdentStart
}

func isDec(b byte) bool              { return byteClass[b]&clsDigit != 0 }
func isHex(b byte) bool              { return byteClass[b]&clsHex != 0 }
func isIdentStartByte(b byte) bool    { return byteClass[b]&clsIdentStart != 0 }
func isIdentContinueByte(b byte) bool { return byteClass[b]&(clsIdentStart|clsDigit) != 0 }

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r)
}

func lowerASCII(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b | 0x20
	}
	return b
}

// peekRune decodes the rune under the cursor; size is 0 at EOF.
func (lx *Lexer) peekRune() (rune, int) {
	rest := lx.cursor.rest()
	if len(rest) == 0 {
		return utf8.RuneError, 0
	}
	if rest[0] < utf8.RuneSelf {
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

// bumpRune steps over the rune under the cursor. It reports false at EOF
// and on invalid UTF-8, where the caller decides how to advance.
func (lx *Lexer) bumpRune() bool {
	r, size := lx.peekRune()
	if size == 0 || (r == utf8.RuneError && size == 1) {
		return false
	}
	lx.cursor.BumpN(size)
	return true
}

// isNumberAfterDot handles ".5".
func (lx *Lexer) isNumberAfterDot() bool {
	return lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1))
}
