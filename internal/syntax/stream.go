package syntax

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"provcheck/internal/lexer"
	"provcheck/internal/source"
	"provcheck/internal/token"
)

// ErrUnparsable is wrapped by every error Build returns. Such a file gets no
// diagnostics at all.
var ErrUnparsable = errors.New("unparsable source")

// Stream is an indexed token sequence of one file. The last token is EOF.
type Stream struct {
	File   *source.File
	Tokens []token.Token
	match  []int32 // index of the partner bracket, -1 for everything else
	lines  []uint32
}

// lexReporter keeps the first structural lexing problem.
type lexReporter struct {
	first error
}

func (r *lexReporter) Report(kind string, span source.Span, msg string) {
	switch kind {
	case lexer.KindUnknownChar, lexer.KindBadNumber:
		// stray bytes do not break the class/method structure
		return
	}
	if r.first == nil {
		r.first = &Error{Kind: kind, Span: span, Msg: msg}
	}
}

// Build lexes file and matches (), [] and {} pairs.
func Build(file *source.File) (*Stream, error) {
	rep := &lexReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	tokens := lx.All()
	if rep.first != nil {
		return nil, rep.first
	}

	s := &Stream{
		File:   file,
		Tokens: tokens,
		match:  make([]int32, len(tokens)),
		lines:  make([]uint32, len(tokens)),
	}
	if err := s.matchBrackets(); err != nil {
		return nil, err
	}
	for i, tok := range tokens {
		s.lines[i] = file.LineOf(tok.Span.Start)
	}
	return s, nil
}

func closerOf(k token.Kind) token.Kind {
	switch k {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	case token.LBrace:
		return token.RBrace
	case token.AttrOpen:
		return token.RBracket
	}
	return token.Invalid
}

func (s *Stream) matchBrackets() error {
	stack := make([]int32, 0, 32)
	for i, tok := range s.Tokens {
		s.match[i] = -1
		idx, err := safecast.Conv[int32](i)
		if err != nil {
			return &Error{Kind: "TooManyTokens", Span: tok.Span, Msg: err.Error()}
		}
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace, token.AttrOpen:
			stack = append(stack, idx)
		case token.RParen, token.RBracket, token.RBrace:
			if len(stack) == 0 {
				return &Error{Kind: "UnbalancedBracket", Span: tok.Span, Msg: fmt.Sprintf("unexpected %q", tok.Text)}
			}
			open := stack[len(stack)-1]
			if closerOf(s.Tokens[open].Kind) != tok.Kind {
				return &Error{
					Kind: "UnbalancedBracket",
					Span: tok.Span,
					Msg:  fmt.Sprintf("%q does not close %q", tok.Text, s.Tokens[open].Text),
				}
			}
			stack = stack[:len(stack)-1]
			s.match[open] = idx
			s.match[i] = open
		}
	}
	if len(stack) > 0 {
		open := s.Tokens[stack[len(stack)-1]]
		return &Error{Kind: "UnbalancedBracket", Span: open.Span, Msg: fmt.Sprintf("unclosed %q", open.Text)}
	}
	return nil
}

// Len returns the number of tokens, EOF included.
func (s *Stream) Len() int { return len(s.Tokens) }

// At returns token i, or the EOF token when i is out of range.
func (s *Stream) At(i int) token.Token {
	if i < 0 || i >= len(s.Tokens) {
		return s.Tokens[len(s.Tokens)-1]
	}
	return s.Tokens[i]
}

// Kind is At(i).Kind.
func (s *Stream) Kind(i int) token.Kind {
	return s.At(i).Kind
}

// Line returns the 1-based line token i starts on.
func (s *Stream) Line(i int) uint32 {
	if i < 0 || i >= len(s.lines) {
		return 0
	}
	return s.lines[i]
}

// Match returns the partner of the bracket at i, or -1.
func (s *Stream) Match(i int) int {
	if i < 0 || i >= len(s.match) {
		return -1
	}
	return int(s.match[i])
}

// Enclosing returns the index of the innermost "{" whose block contains
// token i, or -1 at file level.
func (s *Stream) Enclosing(i int) int {
	for j := i - 1; j >= 0; j-- {
		switch s.Tokens[j].Kind {
		case token.LBrace:
			if m := s.Match(j); m > i {
				return j
			}
		case token.RBrace, token.RParen, token.RBracket:
			// skip the whole closed group
			j = s.Match(j)
		}
	}
	return -1
}

// Skip returns the index after the bracket group starting at i. For any
// other token it returns i+1.
func (s *Stream) Skip(i int) int {
	if m := s.Match(i); m > i {
		return m + 1
	}
	return i + 1
}
