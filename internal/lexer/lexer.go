package lexer

import (
	"provcheck/internal/source"
	"provcheck/internal/token"
)

// Lexer turns one PHP file into tokens. Text outside <?php ... ?> comes
// back as InlineHTML; comments and whitespace ride along as Leading trivia
// of the next significant token.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	inPHP  bool

	peeked  token.Token
	hasPeek bool
	trivia  []token.Trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.hasPeek {
		lx.hasPeek = false
		return lx.peeked
	}
	if !lx.inPHP {
		if tok, ok := lx.scanInlineHTML(); ok {
			return tok
		}
	}

	lx.collectLeadingTrivia()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}
	tok := lx.scanToken()
	tok.Leading, lx.trivia = lx.trivia, nil
	return tok
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case ch == '?' && lx.cursor.PeekAt(1) == '>':
		return lx.scanCloseTag()

	case ch == '$' && isIdentStartByte(lx.cursor.PeekAt(1)):
		return lx.scanVariable()

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		if lx.isBinaryStringPrefix() {
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			return lx.scanQuoted(start, lx.cursor.Peek())
		}
		return lx.scanIdentOrKeyword()

	case isDec(ch), lx.isNumberAfterDot():
		return lx.scanNumber()

	case ch == '\'' || ch == '"' || ch == '`':
		return lx.scanQuoted(lx.cursor.Mark(), ch)

	case ch == '<' && lx.cursor.HasPrefix("<<<"):
		return lx.scanHeredoc()
	}
	return lx.scanOperatorOrPunct()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if !lx.hasPeek {
		lx.peeked, lx.hasPeek = lx.Next(), true
	}
	return lx.peeked
}

// All lexes the rest of the file; the last token is EOF.
func (lx *Lexer) All() []token.Token {
	var tokens []token.Token
	for tok := lx.Next(); ; tok = lx.Next() {
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.file.Text(sp)}
}

// isBinaryStringPrefix reports a b'...' or b"..." literal.
func (lx *Lexer) isBinaryStringPrefix() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && (b0 == 'b' || b0 == 'B') && (b1 == '\'' || b1 == '"')
}
