package lexer

import (
	"provcheck/internal/token"
)

// scanQuoted scans a '...', "..." or `...` literal starting at the quote byte.
// start may sit one byte earlier for b"..." binary strings. Literals may span
// lines; a backslash always escapes the following byte.
func (lx *Lexer) scanQuoted(start Mark, quote byte) token.Token {
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == quote {
			return lx.emit(token.StringLit, start)
		}
		if b == '\\' {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(KindUnterminatedString, sp, "unterminated string literal")
	return lx.emit(token.Invalid, start)
}

// scanHeredoc scans <<<ID, <<<"ID" and <<<'ID' (nowdoc) up to and including
// the closing identifier. The closing identifier may be indented.
// Anything that is not a valid opener falls back to the "<<" operator.
func (lx *Lexer) scanHeredoc() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(3)
	for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
		lx.cursor.Bump()
	}

	var quote byte
	if q := lx.cursor.Peek(); q == '"' || q == '\'' {
		quote = q
		lx.cursor.Bump()
	}
	idStart := lx.cursor.Off
	if !lx.scanNamePart() {
		lx.cursor.Reset(start)
		return lx.scanOperatorOrPunct()
	}
	id := string(lx.file.Content[idStart:lx.cursor.Off])
	if quote != 0 && !lx.cursor.Eat(quote) {
		lx.cursor.Reset(start)
		return lx.scanOperatorOrPunct()
	}
	lx.cursor.Eat('\r')
	if !lx.cursor.Eat('\n') {
		lx.cursor.Reset(start)
		return lx.scanOperatorOrPunct()
	}

	for !lx.cursor.EOF() {
		for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
			lx.cursor.Bump()
		}
		if lx.cursor.HasPrefix(id) {
			lx.cursor.BumpN(len(id))
			if !isNameStart(lx.cursor.Peek()) && !isDec(lx.cursor.Peek()) {
				return lx.emit(token.StringLit, start)
			}
		}
		for !lx.cursor.EOF() && lx.cursor.Bump() != '\n' {
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.report(KindUnterminatedHeredoc, sp, "unterminated heredoc, missing closing "+id)
	return lx.emit(token.Invalid, start)
}
