package token

import (
	"provcheck/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAbstract && t.Kind <= KwYield
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsName reports whether the token can name a method. PHP allows reserved
// words as method names, so keywords qualify as well.
func (t Token) IsName() bool { return t.Kind == Ident || t.IsKeyword() }

// DocBlock returns the last doc block among the leading trivia, if any.
// Only whitespace may separate it from the token.
func (t Token) DocBlock() (Trivia, bool) {
	for i := len(t.Leading) - 1; i >= 0; i-- {
		tv := t.Leading[i]
		switch tv.Kind {
		case TriviaSpace, TriviaNewline:
			continue
		case TriviaDocBlock:
			return tv, true
		}
		break
	}
	return Trivia{}, false
}
