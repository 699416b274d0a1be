package lexer

import (
	"provcheck/internal/token"
)

// multiOps lists every operator longer than one byte, longest first so the
// scan stays greedy. Operators nothing downstream inspects map to token.Op.
var multiOps = []struct {
	text string
	kind token.Kind
}{
	{"?->", token.NullsafeArrow},
	{"...", token.Ellipsis},
	{"===", token.Op}, {"!==", token.Op}, {"<=>", token.Op}, {"**=", token.Op},
	{"??=", token.Op}, {"<<=", token.Op}, {">>=", token.Op},
	{"::", token.DoubleColon},
	{"->", token.Arrow},
	{"=>", token.FatArrow},
	{"#[", token.AttrOpen},
	{"==", token.Op}, {"!=", token.Op}, {"<>", token.Op}, {"<=", token.Op},
	{">=", token.Op}, {"&&", token.Op}, {"||", token.Op}, {"??", token.Op},
	{"++", token.Op}, {"--", token.Op}, {"+=", token.Op}, {"-=", token.Op},
	{"*=", token.Op}, {"/=", token.Op}, {".=", token.Op}, {"%=", token.Op},
	{"&=", token.Op}, {"|=", token.Op}, {"^=", token.Op}, {"<<", token.Op},
	{">>", token.Op}, {"**", token.Op},
}

var singleOps = map[byte]token.Kind{
	'(': token.LParen, ')': token.RParen,
	'{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
	';': token.Semicolon, ',': token.Comma, ':': token.Colon,
	'?': token.Question, '|': token.Pipe, '&': token.Amp,
	'\\': token.Backslash, '=': token.Assign, '$': token.Dollar,
	'+': token.Op, '-': token.Op, '*': token.Op, '/': token.Op, '%': token.Op,
	'.': token.Op, '<': token.Op, '>': token.Op, '!': token.Op, '~': token.Op,
	'^': token.Op, '@': token.Op,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	// \Foo\Bar is a qualified name, not a lone backslash.
	if lx.cursor.Peek() == '\\' && isNameStart(lx.cursor.PeekAt(1)) {
		return lx.scanIdentOrKeyword()
	}

	for _, op := range multiOps {
		if lx.cursor.HasPrefix(op.text) {
			lx.cursor.BumpN(len(op.text))
			return lx.emit(op.kind, start)
		}
	}
	if kind, ok := singleOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return lx.emit(kind, start)
	}
	return lx.scanUnknown()
}

// scanUnknown consumes one whole rune, or one byte of invalid UTF-8.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	if !lx.bumpRune() {
		lx.cursor.Bump()
	}
	lx.report(KindUnknownChar, lx.cursor.SpanFrom(start), "unknown character")
	return lx.emit(token.Invalid, start)
}
