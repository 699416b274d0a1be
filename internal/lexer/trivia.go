package lexer

import (
	"provcheck/internal/token"
)

// collectLeadingTrivia gathers the trivia preceding the next significant token.
//   - runs of ' ', '\t' and '\r' become one TriviaSpace
//   - runs of '\n' become one TriviaNewline
//   - "//..." and "#..." up to the newline or "?>" become TriviaLineComment
//   - "/* ... */" becomes TriviaBlockComment, "/** ... */" TriviaDocBlock
//
// "#[" is an attribute opener, not a comment.
func (lx *Lexer) collectLeadingTrivia() {
	lx.trivia = lx.trivia[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue

		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue

		case b == '#' && lx.cursor.PeekAt(1) != '[':
			lx.scanLineComment(start)
			continue

		case b == '/' && lx.cursor.PeekAt(1) == '/':
			lx.scanLineComment(start)
			continue

		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.scanBlockComment(start)
			continue
		}

		return
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.trivia = append(lx.trivia, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// scanLineComment stops before the newline or a closing "?>" tag.
func (lx *Lexer) scanLineComment(start Mark) {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || (b == '?' && lx.cursor.PeekAt(1) == '>') {
			break
		}
		lx.cursor.Bump()
	}
	lx.pushTrivia(token.TriviaLineComment, start)
}

// scanBlockComment handles "/* */" and "/** */". PHP comments do not nest.
func (lx *Lexer) scanBlockComment(start Mark) {
	lx.cursor.BumpN(2)
	kind := token.TriviaBlockComment
	// "/**/" is an empty block comment, not a doc block
	if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) != '/' {
		kind = token.TriviaDocBlock
	}
	closed := false
	for !lx.cursor.EOF() {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			lx.cursor.BumpN(2)
			closed = true
			break
		}
		lx.cursor.Bump()
	}
	if !closed {
		lx.report(KindUnterminatedComment, lx.cursor.SpanFrom(start), "unterminated comment")
	}
	lx.pushTrivia(kind, start)
}
