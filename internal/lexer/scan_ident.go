package lexer

import (
	"provcheck/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword scans a name and checks it with LookupKeyword.
// Qualified names ("Foo\Bar", "\Generator") are a single Ident token, the
// way PHP 8 lexes them. Token.Text is always the exact source slice.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	qualified := false

	if lx.cursor.Peek() == '\\' {
		lx.cursor.Bump()
		qualified = true
	}
	if !lx.scanNamePart() {
		lx.cursor.Reset(start)
		if lx.cursor.Eat('\\') {
			return lx.emit(token.Backslash, start)
		}
		return lx.scanUnknown()
	}
	for lx.cursor.Peek() == '\\' && isNameStart(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.scanNamePart()
		qualified = true
	}

	tok := lx.emit(token.Ident, start)
	if qualified {
		return tok
	}

	// a keyword followed by "\" was already consumed as a qualified name above
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanNamePart consumes one identifier segment.
func (lx *Lexer) scanNamePart() bool {
	r, sz := lx.peekRune()
	if sz == 0 {
		return false
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return false
		}
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			return false
		}
		lx.bumpRune()
	}
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 {
			return true
		}
		if r2 < utf8RuneSelf {
			if !isIdentContinueByte(byte(r2)) {
				return true
			}
			lx.cursor.Bump()
			continue
		}
		if !isIdentContinueRune(r2) {
			return true
		}
		lx.bumpRune()
	}
}

// scanVariable scans "$name"; "$this" is an ordinary Variable.
func (lx *Lexer) scanVariable() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	lx.scanNamePart()
	return lx.emit(token.Variable, start)
}

func isNameStart(b byte) bool {
	return isIdentStartByte(b) || b >= utf8RuneSelf
}
