package lexer

import (
	"provcheck/internal/token"
)

// Supported: 0, 1_000, 0b..., 0o..., 0x..., legacy octal 0755, 1.0, .5, 1e-3, 1.0E+10.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	if lx.cursor.Peek() == '.' {
		kind = token.FloatLit
	}

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			return lx.scanPrefixed(start, isHex)
		case 'b', 'B':
			return lx.scanPrefixed(start, func(b byte) bool { return b == '0' || b == '1' })
		case 'o', 'O':
			return lx.scanPrefixed(start, func(b byte) bool { return b >= '0' && b <= '7' })
		}
	}

	lx.scanDigits()
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.scanDigits()
	} else if kind == token.IntLit && lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) != '.' && lx.cursor.PeekAt(1) != '=' {
		// "1." is a float in PHP
		kind = token.FloatLit
		lx.cursor.Bump()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// "1e" followed by a name: the name is a separate token
			lx.cursor.Reset(mark)
		} else {
			kind = token.FloatLit
			lx.scanDigits()
		}
	}

	return lx.emit(kind, start)
}

func (lx *Lexer) scanDigits() {
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
	}
	for isDec(lx.cursor.Peek()) || (lx.cursor.Peek() == '_' && isDec(lx.cursor.PeekAt(1))) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanPrefixed(start Mark, digit func(byte) bool) token.Token {
	lx.cursor.BumpN(2)
	if !digit(lx.cursor.Peek()) {
		sp := lx.cursor.SpanFrom(start)
		lx.report(KindBadNumber, sp, "expected digits after number prefix")
		return lx.emit(token.Invalid, start)
	}
	for digit(lx.cursor.Peek()) || (lx.cursor.Peek() == '_' && digit(lx.cursor.PeekAt(1))) {
		lx.cursor.Bump()
	}
	return lx.emit(token.IntLit, start)
}
