package lexer

import (
	"provcheck/internal/token"
)

// scanInlineHTML consumes text up to the next open tag. It returns the
// InlineHTML token when there was any text, otherwise the OpenTag itself, or
// ok=false when the cursor ended up inside PHP code with nothing to emit.
func (lx *Lexer) scanInlineHTML() (token.Token, bool) {
	if lx.cursor.EOF() {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefixFold("<?php") || lx.cursor.HasPrefix("<?=") {
			break
		}
		lx.cursor.Bump()
	}
	if lx.cursor.Off > uint32(start) {
		return lx.emit(token.InlineHTML, start), true
	}
	if lx.cursor.EOF() {
		return token.Token{}, false
	}
	tagStart := lx.cursor.Mark()
	if lx.cursor.HasPrefix("<?=") {
		lx.cursor.BumpN(3)
	} else {
		lx.cursor.BumpN(5)
	}
	lx.inPHP = true
	return lx.emit(token.OpenTag, tagStart), true
}

func (lx *Lexer) scanCloseTag() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2)
	// a single newline directly after "?>" belongs to the tag
	lx.cursor.Eat('\n')
	lx.inPHP = false
	return lx.emit(token.CloseTag, start)
}
